package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// RouteFile lists the routes to probe. Paths are joined to Base unless
// they are absolute URLs.
type RouteFile struct {
	Base   string   `yaml:"base"`
	Routes []string `yaml:"routes"`
}

var defaultRoutes = []string{
	"/",
	"/clases",
	"/noticias",
	"/galeria",
	"/contacto",
	"/donaciones",
	"/login",
}

// ParseRouteFile decodes a route list. An empty routes key keeps the
// defaults.
func ParseRouteFile(data []byte) (RouteFile, error) {
	var rf RouteFile
	if len(bytes.TrimSpace(data)) == 0 {
		return rf, fmt.Errorf("smoke: route file is empty")
	}
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return rf, fmt.Errorf("smoke: decode route file: %w", err)
	}
	if len(rf.Routes) == 0 {
		rf.Routes = defaultRoutes
	}
	return rf, nil
}

type probeResult struct {
	URL    string
	Status int
	Err    error
}

func (r probeResult) ok() bool { return r.Err == nil && r.Status < 400 }

func smokeCmd() *cobra.Command {
	var (
		file    string
		base    string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Send HEAD requests to the site routes and report failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			rf := RouteFile{Routes: defaultRoutes}
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("smoke: read %s: %w", file, err)
				}
				if rf, err = ParseRouteFile(data); err != nil {
					return err
				}
			}
			if base != "" {
				rf.Base = base
			}
			if rf.Base == "" {
				rf.Base = os.Getenv("APP_URL")
			}
			if rf.Base == "" {
				return fmt.Errorf("smoke: no base URL (use --base, the route file or APP_URL)")
			}

			client := &http.Client{
				Timeout: timeout,
				// A redirect counts as the route answering.
				CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
			}
			results := probe(cmd.Context(), client, rf)
			failed := 0
			for _, r := range results {
				fmt.Println(formatResult(r))
				if !r.ok() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d routes failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with base and routes")
	cmd.Flags().StringVar(&base, "base", "", "Base URL, overrides the file and APP_URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Per-request timeout")
	return cmd
}

func probe(ctx context.Context, client *http.Client, rf RouteFile) []probeResult {
	base := strings.TrimRight(rf.Base, "/")
	out := make([]probeResult, 0, len(rf.Routes))
	for _, route := range rf.Routes {
		url := route
		if !strings.HasPrefix(route, "http://") && !strings.HasPrefix(route, "https://") {
			url = base + "/" + strings.TrimLeft(route, "/")
		}
		res := probeResult{URL: url}
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			res.Err = err
			out = append(out, res)
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			res.Err = err
		} else {
			res.Status = resp.StatusCode
			resp.Body.Close()
		}
		out = append(out, res)
	}
	return out
}

func formatResult(r probeResult) string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s %s (%v)", failStyle.Render("FAIL"), r.URL, r.Err)
	case !r.ok():
		return fmt.Sprintf("%s %s (%d)", failStyle.Render("FAIL"), r.URL, r.Status)
	default:
		return fmt.Sprintf("%s %s (%d)", okStyle.Render("PASS"), r.URL, r.Status)
	}
}
