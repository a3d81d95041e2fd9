package cli

import (
	"context"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sosatree/sosatree/pkg/cache"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty defaults to svg", input: "", want: []string{"svg"}},
		{name: "single", input: "json", want: []string{"json"}},
		{name: "multiple", input: "svg,png,dot", want: []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{name: "no output strips input ext", output: "", input: "family.ged", want: "family"},
		{name: "output with format ext stripped", output: "chart.svg", input: "family.ged", want: "chart"},
		{name: "output without format ext kept", output: "out/chart", input: "family.ged", want: "out/chart"},
		{name: "output with unrelated ext kept", output: "chart.out", input: "family.ged", want: "chart.out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basePath(tt.output, tt.input)
			if got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"parse", "chart", "layout", "render", "pick", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestNewCacheSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("no-cache wins over redis", func(t *testing.T) {
		c := New(io.Discard, log.InfoLevel)
		c.RedisAddr = "localhost:6379"
		cc, err := c.newCache(ctx, true)
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		defer cc.Close()
		if _, ok := cc.(*cache.NullCache); !ok {
			t.Errorf("newCache(noCache=true) = %T, want *cache.NullCache", cc)
		}
	})

	t.Run("file cache by default", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", t.TempDir())
		c := New(io.Discard, log.InfoLevel)
		cc, err := c.newCache(ctx, false)
		if err != nil {
			t.Fatalf("newCache() error: %v", err)
		}
		defer cc.Close()
		if _, ok := cc.(*cache.FileCache); !ok {
			t.Errorf("newCache() = %T, want *cache.FileCache", cc)
		}
	})

	t.Run("unreachable redis fails fast", func(t *testing.T) {
		c := New(io.Discard, log.InfoLevel)
		// Port 1 on localhost refuses connections, so the startup ping fails.
		c.RedisAddr = "127.0.0.1:1"
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if _, err := c.newCache(pingCtx, false); err == nil {
			t.Error("newCache() with unreachable redis should fail")
		}
	})
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("log level = %v, want debug", c.Logger.GetLevel())
	}
}
