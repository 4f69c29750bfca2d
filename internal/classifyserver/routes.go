package classifyserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mechiko/bilevelmatch/pkg/classify"
	"github.com/mechiko/bilevelmatch/pkg/multipage"
)

// Routes registers the classification API on the server's echo.Echo.
func (s *Server) Routes() error {
	s.server.POST("/v1/classify", s.classifyOnePage)
	s.server.POST("/v1/multipage", s.classifyMultiPage)
	return nil
}

func (s *Server) classifyOnePage(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}

	opts, err := req.Options.toOptions()
	if err != nil {
		return s.badRequest(c, err)
	}
	patterns, err := decodePatterns(opts, req.Patterns)
	if err != nil {
		return s.badRequest(c, err)
	}

	level := req.Options.ClassifierLevel
	if level == 0 {
		level = classify.DefaultLevel
	}

	nodes := make([]*classify.Node, 0, len(patterns))
	for i, p := range patterns {
		if p == nil {
			continue
		}
		nodes = append(nodes, &classify.Node{Pattern: p, ID: i, Pos: i, DPI: req.DPI})
	}
	classifier := &classify.Classifier{Level: level}
	classes := classifier.ClassifyNodes(nodes, opts)
	maxTag := classify.AssignTags(classes)

	tags := make([]int, len(patterns))
	for _, n := range nodes {
		tags[n.Pos] = n.Tag
	}

	return c.JSON(http.StatusOK, classifyResponse{Tags: tags, MaxTag: maxTag})
}

func (s *Server) classifyMultiPage(c echo.Context) error {
	var req multipageRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}

	opts, err := req.Options.toOptions()
	if err != nil {
		return s.badRequest(c, err)
	}

	pages := make([]multipage.Page, len(req.Pages))
	for i, pg := range req.Pages {
		patterns, err := decodePatterns(opts, pg.Patterns)
		if err != nil {
			return s.badRequest(c, err)
		}
		pages[i] = multipage.Page{Patterns: patterns, DPI: pg.DPI}
	}

	res, err := multipage.Classify(pages, opts)
	if err != nil {
		return s.serverError(c, err)
	}

	return c.JSON(http.StatusOK, multipageResponse{
		Tags:            res.Tags,
		MaxTag:          res.MaxTag,
		DictionaryFlags: res.DictionaryFlags,
	})
}
