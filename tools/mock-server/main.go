// Package main implements a fake deal sandbox for local development. It
// serves the eBay OAuth token and Browse search endpoints plus RSS feeds
// shaped like the curated deal sites and per-city classifieds, all built
// from one canned catalog, so the aggregator can run without credentials
// or network access.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/donaldgifford/deal-aggregator/internal/ebay"
	"github.com/donaldgifford/deal-aggregator/pkg/logger"
)

const searchPath = "/buy/browse/v1/item_summary/search"

type browseAPIResponse struct {
	ItemSummaries []ebay.ItemSummary `json:"itemSummaries"`
	Total         int                `json:"total"`
	Offset        int                `json:"offset"`
	Limit         int                `json:"limit"`
	Next          string             `json:"next,omitempty"`
}

// sandbox answers every endpoint from the canned catalog. Listing times are
// derived from now so feeds always look fresh.
type sandbox struct {
	log *slog.Logger
	now func() time.Time
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	level := flag.String("log-level", "debug", "log level")
	flag.Parse()

	log := logger.New(*level, "text")
	addr := fmt.Sprintf(":%d", *port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := newServer(log, time.Now)
	go func() {
		log.Info("starting mock deal server", "addr", addr, "products", len(catalog))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
		os.Exit(1)
	}
}

func newServer(log *slog.Logger, now func() time.Time) *echo.Echo {
	s := &sandbox{log: log, now: now}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	e.POST("/identity/v1/oauth2/token", s.token)
	e.GET(searchPath, s.search, requireBearer)
	e.GET("/feeds/:site", s.curated)
	e.GET("/craigslist/:city/:section", s.classifieds)
	return e
}

func requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ") {
			return c.NoContent(http.StatusUnauthorized)
		}
		return next(c)
	}
}

// token issues an application token to any caller presenting Basic Auth.
// The credentials themselves are not checked.
func (s *sandbox) token(c echo.Context) error {
	if _, _, ok := c.Request().BasicAuth(); !ok {
		s.log.Warn("token request missing Basic Auth header")
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		})
	}

	s.log.Info("issued mock token")
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
		"expires_in":   7200,
		"token_type":   "Application Access Token",
	})
}

func queryInt(c echo.Context, key string, def, minimum int) int {
	if v, err := strconv.Atoi(c.QueryParam(key)); err == nil && v >= minimum {
		return v
	}
	return def
}

func (s *sandbox) search(c echo.Context) error {
	q := c.QueryParam("q")
	limit := queryInt(c, "limit", 50, 1)
	offset := queryInt(c, "offset", 0, 0)

	matched := filterCatalog(q, nil)
	resp := browseAPIResponse{
		ItemSummaries: []ebay.ItemSummary{},
		Total:         len(matched),
		Offset:        offset,
		Limit:         limit,
	}
	if offset < len(matched) {
		page := matched[offset:min(offset+limit, len(matched))]
		for i := range page {
			resp.ItemSummaries = append(resp.ItemSummaries, page[i].itemSummary(s.now()))
		}
	}
	if offset+limit < len(matched) {
		resp.Next = fmt.Sprintf("%s?q=%s&offset=%d&limit=%d", searchPath, q, offset+limit, limit)
	}

	s.log.Info("search", "query", q, "matched", resp.Total, "returned", len(resp.ItemSummaries))
	return c.JSON(http.StatusOK, resp)
}

// curated serves /feeds/:site?q=... for the curated deal sites. Only
// products sold by a store appear there.
func (s *sandbox) curated(c echo.Context) error {
	site := c.Param("site")
	if site != "slickdeals" && site != "dealnews" {
		return echo.ErrNotFound
	}

	products := filterCatalog(c.QueryParam("q"), func(p *product) bool { return p.Store != "" })
	items := make([]rssItem, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, rssItem{
			Title:       p.curatedTitle(),
			Link:        fmt.Sprintf("https://%s.example.com/deals/%s", site, p.ID),
			GUID:        site + "-" + p.ID,
			Description: p.curatedBody(),
			PubDate:     pubDate(p.postedAt(s.now())),
		})
	}

	s.log.Info("curated feed", "site", site, "items", len(items))
	return renderRSS(c, site+" frontpage", "https://"+site+".example.com", items)
}

// classifieds serves /craigslist/:city/:section?query=... The city only
// changes links and IDs so every city returns the same inventory.
func (s *sandbox) classifieds(c echo.Context) error {
	city, section := c.Param("city"), c.Param("section")

	products := filterCatalog(c.QueryParam("query"), func(p *product) bool {
		return section == "ela" || p.Section == section
	})
	items := make([]rssItem, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, rssItem{
			Title:       fmt.Sprintf("%s - $%s (%s)", p.Title, money(p.Price*0.9), city),
			Link:        fmt.Sprintf("https://%s.craigslist.example.com/%s/%s.html", city, section, p.ID),
			GUID:        city + "-" + p.ID,
			Description: p.Condition + " condition. Local pickup only.",
			PubDate:     pubDate(p.postedAt(s.now())),
		})
	}

	s.log.Info("classifieds feed", "city", city, "section", section, "items", len(items))
	return renderRSS(c, "craigslist "+city+" "+section, "https://"+city+".craigslist.example.com", items)
}
