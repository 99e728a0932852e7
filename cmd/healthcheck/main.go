// Command healthcheck consulta /health de una API en ejecución y sale con
// código distinto de cero si no está sana. Pensado para HEALTHCHECK en contenedores.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"asclepius-api/internal/platform/httpclient"
)

func main() {
	baseURL := flag.String("url", envOr("HEALTHCHECK_URL", "http://127.0.0.1:8080"), "base URL of the API")
	timeout := flag.Duration("timeout", 3*time.Second, "request timeout")
	flag.Parse()

	if err := run(context.Background(), *baseURL, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "unhealthy:", err)
		os.Exit(1)
	}
	fmt.Println("healthy")
}

func run(ctx context.Context, baseURL string, timeout time.Duration) error {
	c, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body struct {
		Status string `json:"status"`
	}
	if err := c.GetJSON(ctx, "/health", &body); err != nil {
		return err
	}
	if body.Status != "healthy" {
		return fmt.Errorf("status %q", body.Status)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
