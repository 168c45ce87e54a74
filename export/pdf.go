// Package export renders printable day plan summaries for admins.
package export

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"

	"tourdesk/tours"
	"tourdesk/upstream"
	"tourdesk/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

type Handler struct {
	api *upstream.Client
}

func NewHandler(api *upstream.Client) *Handler { return &Handler{api: api} }

// DayPlanPDF fetches a day, normalizes it and renders an A4 summary with a
// QR code linking to the public package page.
func (h *Handler) DayPlanPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	raw, err := h.api.Get(r.Context(), tours.DaysCollection, id)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	day := tours.Normalize(raw)

	buf, err := renderDayPlan(day)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=day-plan-"+id+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func renderDayPlan(day tours.Day) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Day %d: %s", day.Number, day.Title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if day.Description != "" {
		pdf.MultiCell(0, 6, day.Description, "", "L", false)
		pdf.Ln(4)
	}

	section(pdf, "Places")
	for _, p := range day.Places {
		line(pdf, p.Name, p.Description)
	}

	section(pdf, "Stays")
	for _, s := range day.Stays {
		detail := s.Location
		var rooms []string
		for _, rt := range s.RoomTypes {
			r := string(rt.Type)
			if rt.BreakfastIncluded {
				r += " +breakfast"
			}
			rooms = append(rooms, r)
		}
		if len(rooms) > 0 {
			detail = strings.TrimSpace(detail + " (" + strings.Join(rooms, ", ") + ")")
		}
		line(pdf, s.Name, detail)
	}

	section(pdf, "Meals")
	for _, m := range day.Meals {
		detail := strings.TrimSpace(m.RestaurantName + " " + m.Time)
		if m.Included {
			detail += " (included)"
		}
		line(pdf, m.Type, detail)
	}

	section(pdf, "Activities")
	for _, a := range day.Activities {
		line(pdf, a.Title, a.Description)
	}

	// QR to the public package page
	if day.PackageID != "" {
		publicBase := os.Getenv("PUBLIC_SITE_URL")
		if publicBase == "" {
			publicBase = "https://www.tourdesk.local"
		}
		qrPNG, err := qrcode.Encode(publicBase+"/packages/"+day.PackageID, qrcode.Medium, 256)
		if err != nil {
			return nil, err
		}
		imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
}

func line(pdf *gofpdf.Fpdf, name, detail string) {
	if name == "" && detail == "" {
		return
	}
	text := name
	if detail != "" {
		text = strings.TrimSpace(name + " - " + detail)
	}
	pdf.Cell(0, 6, text)
	pdf.Ln(6)
}
