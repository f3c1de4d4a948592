// Package server provides a local preview server for the built site, so
// page and widget changes can be checked before deploying.
package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/910cpr/ew2landers/internal/logger"
	"github.com/910cpr/ew2landers/internal/widget"
)

// Options configures the preview server.
type Options struct {
	// OutputDir is the built site tree to serve.
	OutputDir string
	// EnrollBase and ScheduleURL configure the widget renderer's
	// registration links, same as a production embed would.
	EnrollBase  string
	ScheduleURL string
	// MaxUpcoming caps the widget preview's card count.
	MaxUpcoming int
}

// New builds the preview router serving the output tree. The feed and the
// generated pages are served from the same origin, matching production, so
// the widget's fetch path works unmodified.
func New(opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/widget", func(c *gin.Context) {
		serveWidget(c, opts)
	})

	// NoRoute instead of Static on "/" so /healthz and /widget stay routable.
	fileServer := http.FileServer(http.Dir(opts.OutputDir))
	r.NoRoute(func(c *gin.Context) {
		fileServer.ServeHTTP(c.Writer, c.Request)
	})

	return r
}

// serveWidget renders the schedule widget the way a host page embed would:
// load the feed from this server's own /data/schedule.json, apply the
// filter from the query string, render cards. ?type= and ?value= map to one
// widget filter; ?max= overrides the card cap.
func serveWidget(c *gin.Context, opts Options) {
	loader := widget.NewLoader("http://" + c.Request.Host + "/data/schedule.json")
	loader.Load(c.Request.Context())

	max := opts.MaxUpcoming
	if v := c.Query("max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			max = n
		}
	}
	var filters []widget.Filter
	if t := c.Query("type"); t != "" {
		filters = append(filters, widget.Filter{Type: t, Value: c.Query("value")})
	}

	state := loader.State()
	sessions := widget.Apply(loader.Sessions(), widget.Options{
		Max:     max,
		Filters: filters,
	})
	if state == widget.StatePopulated && len(sessions) == 0 {
		state = widget.StateEmpty
	}

	renderer := widget.NewRenderer(opts.EnrollBase, opts.ScheduleURL)
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(renderer.Render(state, sessions)))
}

// Run serves the output tree on the given port until the process exits.
func Run(opts Options, port int) error {
	addr := fmt.Sprintf(":%d", port)
	logger.Info("preview server listening", logger.Fields{
		"addr": addr,
		"dir":  opts.OutputDir,
	})
	return New(opts).Run(addr)
}
