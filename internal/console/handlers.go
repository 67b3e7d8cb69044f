package console

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/projectdeck/internal/controller"
	"github.com/fyrsmithlabs/projectdeck/internal/notify"
	"github.com/fyrsmithlabs/projectdeck/internal/project"
	"github.com/fyrsmithlabs/projectdeck/internal/render"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Projects int    `json:"projects"`
	Loading  bool   `json:"loading"`
}

type pageData struct {
	View     render.View
	Rows     template.HTML
	Notice   *notify.Notice
	Loading  bool
	Create   controller.FormState
	Edit     controller.FormState
	EditPath string
}

type confirmData struct {
	Prompt  string
	Project project.Project
	Path    string
	Busy    bool
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Projects: s.ctrl.Cache().Len(),
		Loading:  s.ctrl.Loading(),
	})
}

func (s *Server) handleIndex(c echo.Context) error {
	view := s.page.View()
	data := pageData{
		View:    view,
		Rows:    template.HTML(render.TableBodyHTML(view)), // escaped by TableBodyHTML
		Loading: s.ctrl.Loading(),
		Create:  s.ctrl.CreateForm(),
		Edit:    s.ctrl.EditForm(),
	}
	if n, ok := s.notifier.Current(); ok {
		data.Notice = &n
	}
	if data.Edit.Open {
		data.EditPath = url.PathEscape(data.Edit.Target.ID.String())
	}
	return s.renderTemplate(c, pageTemplate, data)
}

func (s *Server) handleRefresh(c echo.Context) error {
	s.ctrl.Load(c.Request().Context())
	return home(c)
}

func (s *Server) handleOpenCreate(c echo.Context) error {
	s.ctrl.OpenCreate()
	return home(c)
}

func (s *Server) handleCloseCreate(c echo.Context) error {
	s.ctrl.CloseCreate()
	return home(c)
}

func (s *Server) handleCreate(c echo.Context) error {
	outcome := s.ctrl.Create(c.Request().Context(), c.FormValue("command"))
	s.logOutcome(c, controller.OpCreate, outcome)
	return home(c)
}

func (s *Server) handleOpenEdit(c echo.Context) error {
	id := projectID(c)
	if err := s.ctrl.OpenEdit(id); err != nil {
		return notFound(err)
	}
	return home(c)
}

func (s *Server) handleCloseEdit(c echo.Context) error {
	s.ctrl.CloseEdit()
	return home(c)
}

func (s *Server) handleEdit(c echo.Context) error {
	id := projectID(c)
	outcome := s.ctrl.Edit(c.Request().Context(), id, c.FormValue("command"))
	s.logOutcome(c, controller.OpEdit, outcome)
	return home(c)
}

func (s *Server) handleConfirmDelete(c echo.Context) error {
	id := projectID(c)
	p, err := s.ctrl.Cache().Find(id)
	if err != nil {
		return notFound(err)
	}
	return s.renderTemplate(c, confirmTemplate, confirmData{
		Prompt:  controller.MsgConfirmDelete,
		Project: p,
		Path:    url.PathEscape(id.String()),
		Busy:    s.ctrl.DeleteBusy(id),
	})
}

func (s *Server) handleDelete(c echo.Context) error {
	id := projectID(c)
	confirm := controller.Confirmed(c.FormValue("confirm") == "yes")
	outcome := s.ctrl.Delete(c.Request().Context(), id, confirm)
	s.logOutcome(c, controller.OpDelete, outcome)
	return home(c)
}

func (s *Server) renderTemplate(c echo.Context, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error(c.Request().Context(), "failed to render page", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render page")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) logOutcome(c echo.Context, op string, outcome controller.Outcome) {
	s.logger.Debug(c.Request().Context(), "operation finished",
		zap.String("operation", op),
		zap.Stringer("outcome", outcome))
}

func home(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func notFound(err error) error {
	if errors.Is(err, project.ErrProjectNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	if errors.Is(err, controller.ErrNotEditable) {
		return echo.NewHTTPError(http.StatusConflict, "only Completed projects can be edited")
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// projectID returns the decoded :id path parameter. Echo routes on the raw
// path only when the request carried one, so the value needs unescaping
// only then.
func projectID(c echo.Context) project.ID {
	param := c.Param("id")
	if c.Request().URL.RawPath == "" {
		return project.ID(param)
	}
	if id, err := url.PathUnescape(param); err == nil {
		return project.ID(id)
	}
	return project.ID(param)
}
