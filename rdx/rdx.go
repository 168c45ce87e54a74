package rdx

import (
	"log"
	"os"
	"time"

	"tourdesk/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

const listTTL = 2 * time.Minute

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		// The gateway works without Redis, lists just stop being cached.
		log.Printf("redis unavailable at %s: %v", addr, err)
	}
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", nil
	}
	v, err := Conn.Get(globals.Ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

func RdxSet(key, value string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, listTTL).Err()
}

func RdxDel(key string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Del(globals.Ctx, key).Err()
}

// CacheList stores a rendered list response for a collection.
func CacheList(collection string, payload []byte) {
	if err := RdxSet("list:"+collection, string(payload)); err != nil {
		log.Printf("cache set failed for %s: %v", collection, err)
	}
}

// CachedList returns the cached list payload, "" on miss.
func CachedList(collection string) string {
	v, err := RdxGet("list:" + collection)
	if err != nil {
		log.Printf("cache get failed for %s: %v", collection, err)
		return ""
	}
	return v
}

// InvalidateList drops a collection's cached list after any successful
// mutation, so the next browse re-fetches fresh backend state.
func InvalidateList(collection string) {
	if err := RdxDel("list:" + collection); err != nil {
		log.Printf("cache invalidation failed for %s: %v", collection, err)
	}
}
