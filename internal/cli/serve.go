package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	apperrors "github.com/sosatree/sosatree/pkg/errors"
	"github.com/sosatree/sosatree/pkg/gedcom"
	"github.com/sosatree/sosatree/pkg/pipeline"
	"github.com/sosatree/sosatree/pkg/store"
	"github.com/sosatree/sosatree/pkg/theme"
)

// maxUploadBytes bounds GEDCOM uploads on the tree endpoint.
const maxUploadBytes = 16 << 20

// serveCommand creates the serve command: an HTTP preview server around the
// chart pipeline.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file.ged]",
		Short: "Serve pedigree charts over HTTP",
		Long: `Serve pedigree charts over HTTP.

Starts a preview server for the given GEDCOM file:

  GET /chart/{xref}          rendered chart for an individual
                             (?generations=4&orientation=portrait&format=svg)
  GET /individuals           individuals in the file as JSON

Trees can also be uploaded and charted by content hash:

  POST /api/trees                          upload a GEDCOM file, returns its hash
  GET  /api/trees/{hash}/chart/{xref}      chart against an uploaded tree

Charts can be archived to a store (in-memory by default, MongoDB with
--mongo-uri):

  POST   /api/charts         save a chart {"name": ..., "chart": {...}}
  GET    /api/charts         list saved chart summaries
  GET    /api/charts/{id}    load a saved chart
  DELETE /api/charts/{id}    delete a saved chart`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8175", "listen address")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB URI for the chart store (default: in-memory)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, source, addr, mongoURI string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Parse once up front so a bad file fails before binding the port.
	tree, treeHash, err := runner.ParseTree(ctx, pipeline.Options{Source: source, Logger: c.Logger})
	if err != nil {
		return err
	}

	var st store.Store
	if mongoURI != "" {
		st, err = store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
		if err != nil {
			return err
		}
		c.Logger.Info("using mongodb chart store", "uri", mongoURI)
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close(context.Background())

	srv := &chartServer{
		cli:      c,
		runner:   runner,
		store:    st,
		source:   source,
		tree:     tree,
		treeHash: treeHash,
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %s (%d individuals)", source, tree.Len())
	printDetail("Listening on %s", addr)
	printNextStep("Open a chart", fmt.Sprintf("curl localhost%s/chart/%s", addr, tree.Individuals()[0].Xref))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// =============================================================================
// chartServer - HTTP Handlers
// =============================================================================

// chartServer holds the state shared by all HTTP handlers.
type chartServer struct {
	cli      *CLI
	runner   *pipeline.Runner
	store    store.Store
	source   string
	tree     *gedcom.Tree
	treeHash string
}

func (s *chartServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/individuals", s.handleIndividuals)
	r.Get("/chart/{xref}", s.handleChart)

	r.Route("/api", func(r chi.Router) {
		r.Post("/trees", s.handleTreeUpload)
		r.Get("/trees/{hash}/chart/{xref}", s.handleTreeChart)

		r.Post("/charts", s.handleChartSave)
		r.Get("/charts", s.handleChartList)
		r.Get("/charts/{id}", s.handleChartLoad)
		r.Delete("/charts/{id}", s.handleChartDelete)
	})

	return r
}

// logRequests logs each request with the CLI logger.
func (s *chartServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.cli.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

// handleIndividuals lists the individuals in the served file.
func (s *chartServer) handleIndividuals(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Xref       string `json:"xref"`
		Name       string `json:"name"`
		Sex        string `json:"sex,omitempty"`
		HasParents bool   `json:"has_parents"`
	}
	individuals := s.tree.Individuals()
	out := make([]entry, 0, len(individuals))
	for _, indi := range individuals {
		out = append(out, entry{
			Xref:       indi.Xref,
			Name:       indi.Name,
			Sex:        indi.Sex,
			HasParents: indi.HasParents(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleChart renders a chart for an individual in the served file.
func (s *chartServer) handleChart(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, r, s.tree, s.treeHash)
}

// handleTreeUpload archives an uploaded GEDCOM source and returns its hash.
func (s *chartServer) handleTreeUpload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "read body: %v", err))
		return
	}

	tree, hash, _, err := s.runner.ParseWithCacheInfo(r.Context(), pipeline.Options{
		SourceData: data,
		Logger:     s.cli.Logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"hash":        hash,
		"individuals": tree.Len(),
	})
}

// handleTreeChart renders a chart against a previously uploaded tree.
func (s *chartServer) handleTreeChart(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	tree, ok, err := s.runner.ParseFromCache(r.Context(), hash)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, apperrors.New(apperrors.ErrCodeChartNotFound, "unknown tree hash: %s", hash))
		return
	}
	s.renderChart(w, r, tree, hash)
}

// renderChart runs layout and render for the xref in the URL, with options
// taken from query parameters.
func (s *chartServer) renderChart(w http.ResponseWriter, r *http.Request, tree *gedcom.Tree, treeHash string) {
	opts, err := chartOptionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Root = chi.URLParam(r, "xref")
	opts.Logger = s.cli.Logger

	th, err := theme.Load(opts.Theme, opts.ThemeDir)
	if err != nil {
		writeError(w, err)
		return
	}

	ch, _, err := s.runner.ComputeChartWithCacheInfo(r.Context(), tree, treeHash, th, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), ch, th, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

// handleChartSave archives a chart in the store.
func (s *chartServer) handleChartSave(w http.ResponseWriter, r *http.Request) {
	var req store.Record
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}
	if len(req.Chart.Boxes) == 0 {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "chart with boxes is required"))
		return
	}

	rec := store.NewRecord(req.Name, req.TreeHash, req.Chart)
	if err := s.store.Save(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleChartList lists saved chart summaries.
func (s *chartServer) handleChartList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// handleChartLoad loads a saved chart by ID.
func (s *chartServer) handleChartLoad(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleChartDelete deletes a saved chart by ID.
func (s *chartServer) handleChartDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Request/Response Helpers
// =============================================================================

// chartOptionsFromQuery builds pipeline options from chart query parameters.
func chartOptionsFromQuery(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{}
	q := r.URL.Query()

	if v := q.Get("generations"); v != "" {
		var gens int
		if _, err := fmt.Sscanf(v, "%d", &gens); err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidGenerations, "invalid generations: %q", v)
		}
		opts.Generations = gens
	}
	opts.Orientation = q.Get("orientation")
	opts.Theme = q.Get("theme")
	opts.Clamp = q.Get("clamp") == "true"
	opts.NoLines = q.Get("lines") == "false"
	opts.Detailed = q.Get("detailed") == "true"

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	opts.SetLayoutDefaults()
	if err := opts.ValidateForLayout(); err != nil {
		return opts, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return opts, err
	}
	return opts, nil
}

// contentType maps a render format to its MIME type.
func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an application error to an HTTP error response.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidGedcom,
		apperrors.ErrCodeInvalidGenerations, apperrors.ErrCodeInvalidOrientation,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidTheme,
		apperrors.ErrCodeInvalidXref:
		status = http.StatusBadRequest
	case apperrors.ErrCodeIndividualNotFound, apperrors.ErrCodeChartNotFound,
		apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": apperrors.UserMessage(err)})
}
