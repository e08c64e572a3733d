package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/procfs"
)

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, &rootResponse{
		ApiRoutes: s.server.Routes(),
	}, JSON_PRETTY_INDENT)
}

func (s *Server) handleLinks(c echo.Context) error {
	links, err := s.lister.ListLinks()
	if err != nil {
		slog.Error("error dumping links", "err", err)
		return c.JSONPretty(http.StatusInternalServerError, &errorResponse{Err: err.Error()}, JSON_PRETTY_INDENT)
	}

	var netDev procfs.NetDev
	if stats, _ := strconv.ParseBool(c.QueryParam("stats")); stats {
		netDev, err = s.netDev()
		if err != nil {
			slog.Warn("couldn't read interface statistics", "err", err)
		}
	}

	return c.JSONPretty(http.StatusOK, NewLinkInfos(links, netDev), JSON_PRETTY_INDENT)
}

func (s *Server) handleFDB(c echo.Context) error {
	entries, err := s.lister.ListFDB()
	if err != nil {
		slog.Error("error dumping the fdb", "err", err)
		return c.JSONPretty(http.StatusInternalServerError, &errorResponse{Err: err.Error()}, JSON_PRETTY_INDENT)
	}

	return c.JSONPretty(http.StatusOK, NewFDBInfos(entries), JSON_PRETTY_INDENT)
}
