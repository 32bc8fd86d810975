package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/youruser/bigcollage/internal/apperr"
	"github.com/youruser/bigcollage/internal/catalog"
	imagepkg "github.com/youruser/bigcollage/internal/image"
	"github.com/youruser/bigcollage/internal/selection"
	"github.com/youruser/bigcollage/internal/store"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	Catalog     *catalog.Catalog
	Store       *store.SessionStore
	Compositor  *imagepkg.Compositor
	Strings     selection.Strings
	DefaultMode selection.Mode
	Quality     int
	// PhotosDir is served under /photos when set.
	PhotosDir string
	// ShareURL is encoded by /api/qr when no text is given.
	ShareURL string
	Logger   *log.Logger
}

func (s *Server) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

var errorStatus = map[apperr.Code]int{
	apperr.CodeCapacityExceeded:    http.StatusConflict,
	apperr.CodeSelectionIncomplete: http.StatusConflict,
	apperr.CodeInvalidMode:         http.StatusBadRequest,
	apperr.CodeInvalidItem:         http.StatusBadRequest,
	apperr.CodeValidation:          http.StatusBadRequest,
	apperr.CodeInvalidInput:        http.StatusBadRequest,
	apperr.CodeResourceLoad:        http.StatusBadGateway,
	apperr.CodeEncodingRestricted:  http.StatusForbidden,
	apperr.CodeSessionNotFound:     http.StatusNotFound,
}

// writeError reports err as {"code", "error"}. Unknown errors become 500.
func (s *Server) writeError(c *gin.Context, err error) {
	code := apperr.GetCode(err)
	status, ok := errorStatus[code]
	if !ok {
		code = apperr.CodeInternal
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError || code == apperr.CodeResourceLoad {
		s.logger().Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"code": code, "error": apperr.UserMessage(err)})
}

// bindOptional is bind for endpoints whose body may be absent: an empty
// body leaves dst at its zero value.
func (s *Server) bindOptional(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func (s *Server) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.writeError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

// logObserver logs state changes of one session.
type logObserver struct {
	id     string
	logger *log.Logger
}

func (o logObserver) SelectionChanged(st selection.State) {
	o.logger.Debug("selection changed", "session", o.id, "count", st.CountText, "complete", st.CanContinue)
}

func (o logObserver) ModeChanged(st selection.State) {
	o.logger.Debug("mode changed", "session", o.id, "mode", st.Mode, "title", st.Title)
}

type sessionView struct {
	ID    string          `json:"id"`
	Order []catalog.Entry `json:"order"`
	State selection.State `json:"state"`
}

func view(id string, sess *selection.Session) sessionView {
	return sessionView{ID: id, Order: catalog.Entries(sess.Order()), State: sess.State()}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) catalogHandler(c *gin.Context) {
	out := catalog.Filter(s.Catalog.Items(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"count": len(out), "items": catalog.Entries(out)})
}

func (s *Server) createSession(c *gin.Context) {
	var req struct {
		Capacity int `json:"capacity"`
	}
	if !s.bindOptional(c, &req) {
		return
	}
	mode := s.DefaultMode
	if req.Capacity != 0 {
		m, err := selection.ParseMode(req.Capacity)
		if err != nil {
			s.writeError(c, err)
			return
		}
		mode = m
	}

	sess := selection.NewSession(mode,
		selection.WithCatalog(s.Catalog),
		selection.WithOrder(catalog.Shuffled(s.Catalog.Items(), nil)),
		selection.WithStrings(s.Strings),
	)
	id := s.Store.Create(sess)
	sess.Subscribe(logObserver{id: id, logger: s.logger()})
	s.logger().Info("session created", "session", id, "mode", mode)

	c.JSON(http.StatusCreated, view(id, sess))
}

// withSession runs fn on the session named by the :id parameter and writes
// any error.
func (s *Server) withSession(c *gin.Context, fn func(*selection.Session) error) {
	if err := s.Store.With(c.Param("id"), fn); err != nil {
		s.writeError(c, err)
	}
}

func (s *Server) getSession(c *gin.Context) {
	id := c.Param("id")
	s.withSession(c, func(sess *selection.Session) error {
		c.JSON(http.StatusOK, view(id, sess))
		return nil
	})
}

func (s *Server) deleteSession(c *gin.Context) {
	if !s.Store.Delete(c.Param("id")) {
		s.writeError(c, apperr.New(apperr.CodeSessionNotFound, "session %s not found", c.Param("id")))
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) toggleHandler(c *gin.Context) {
	var req struct {
		Item catalog.Item `json:"item" binding:"required"`
	}
	if !s.bind(c, &req) {
		return
	}
	s.withSession(c, func(sess *selection.Session) error {
		ch, err := sess.Toggle(req.Item)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"change": ch, "state": sess.State()})
		return nil
	})
}

func (s *Server) modeHandler(c *gin.Context) {
	var req struct {
		Capacity int `json:"capacity" binding:"required"`
	}
	if !s.bind(c, &req) {
		return
	}
	s.withSession(c, func(sess *selection.Session) error {
		if err := sess.SetMode(req.Capacity); err != nil {
			return err
		}
		c.JSON(http.StatusOK, gin.H{"state": sess.State()})
		return nil
	})
}

func (s *Server) clearHandler(c *gin.Context) {
	s.withSession(c, func(sess *selection.Session) error {
		sess.Clear()
		c.JSON(http.StatusOK, gin.H{"state": sess.State()})
		return nil
	})
}

type previewItem struct {
	catalog.Entry
	URL string `json:"url"`
}

func (s *Server) previewHandler(c *gin.Context) {
	s.withSession(c, func(sess *selection.Session) error {
		entries := catalog.Entries(sess.Selection().Items())
		out := make([]previewItem, 0, len(entries))
		for _, e := range entries {
			out = append(out, previewItem{Entry: e, URL: "/photos/" + url.PathEscape(string(e.Item))})
		}
		c.JSON(http.StatusOK, gin.H{"items": out, "state": sess.State()})
		return nil
	})
}

func (s *Server) summaryHandler(c *gin.Context) {
	s.withSession(c, func(sess *selection.Session) error {
		c.String(http.StatusOK, selection.Summary(sess))
		return nil
	})
}

// exportHandler renders the session's selection and returns it as a JPEG
// attachment. The session stays locked until the export settles.
func (s *Server) exportHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.bindOptional(c, &req) {
		return
	}
	s.withSession(c, func(sess *selection.Session) error {
		sel := sess.Selection()
		comp, err := s.Compositor.Compose(c.Request.Context(), imagepkg.Request{
			Capacity: sel.Capacity(),
			Name:     req.Name,
			Items:    sel.Items(),
		})
		if err != nil {
			return err
		}
		data, name, err := imagepkg.Export(comp, s.Quality)
		if err != nil {
			if apperr.Is(err, apperr.CodeEncodingRestricted) {
				s.logger().Warn("export refused", "session", c.Param("id"), "origins", comp.Origins)
			}
			return err
		}
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		c.Data(http.StatusOK, "image/jpeg", data)
		return nil
	})
}

// qrHandler returns a PNG QR code for the "text" query param, defaulting to
// the share URL.
func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = s.ShareURL
	}
	size := 400
	if sizeStr := c.Query("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		s.writeError(c, apperr.Wrap(apperr.CodeInvalidInput, err, "cannot build qr code"))
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
