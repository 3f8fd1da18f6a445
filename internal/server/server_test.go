package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/coursecatalog/internal/db/dbtest"
)

func TestServeCreateListAndShutdown(t *testing.T) {
	store := dbtest.NewStore(t)
	cfg := dbtest.Config(t)
	cfg.Server.Port = "0"
	cfg.Server.Mode = "production"
	cfg.Server.ReadTimeout = "5s"
	cfg.Server.WriteTimeout = "5s"
	cfg.Server.ShutdownTimeout = "5s"
	cfg.CORS.AllowedOrigins = []string{"*"}

	srv := New(cfg, store, zerolog.Nop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	client := &http.Client{Timeout: 5 * time.Second}

	res, err := client.Post(base+"/courses/", "application/json",
		strings.NewReader(`{"name":"Intro to Python","description":"Basics","duration":"4 weeks"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d", res.StatusCode)
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	res, err = client.Get(base + "/courses/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if len(list) != 1 || list[0]["name"] != "Intro to Python" || list[0]["id"] != float64(1) {
		t.Fatalf("list = %v", list)
	}

	res, err = client.Get(base + "/swagger/doc.json")
	if err != nil {
		t.Fatalf("GET swagger: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("swagger status = %d", res.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	if err := store.Ping(context.Background()); err == nil {
		t.Error("store still open after shutdown")
	}
}
