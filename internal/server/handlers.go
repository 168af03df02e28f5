package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ukaji3/divreport-go/pkg/divreport"
	"github.com/ukaji3/divreport-go/pkg/divreport/models"
	"github.com/ukaji3/divreport-go/pkg/divreport/source"
	"github.com/ukaji3/divreport-go/pkg/divreport/writer"
)

// ReportResponse is returned by the Generate Report endpoints.
type ReportResponse struct {
	Token       string                `json:"token"`
	Filename    string                `json:"filename"`
	DownloadURL string                `json:"downloadUrl"`
	Stats       models.Stats          `json:"stats"`
	Preview     []models.OutputRecord `json:"preview"`
	Summary     models.Summary        `json:"summary"`
}

// Index serves the upload page.
func (s *Server) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GenerateFromUpload builds a report from uploaded files.
// POST /api/report, multipart field "files" (repeated) and optional "reference".
func (s *Server) GenerateFromUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(c, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(c, http.StatusBadRequest, fmt.Errorf("invalid form data: %w", err))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		s.fail(c, http.StatusBadRequest, divreport.ErrNoInputFiles)
		return
	}

	var ref *models.Reference
	if refs := form.File["reference"]; len(refs) > 0 && refs[0].Filename != "" {
		ref, err = divreport.LoadReference(uploadStream(refs[0]))
	} else {
		ref, err = divreport.LoadReferenceFile(s.cfg.ReferencePath())
	}
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	list := make(source.List, 0, len(files))
	for _, fh := range files {
		list = append(list, uploadStream(fh))
	}

	s.generate(c, ref, list)
}

// GenerateFromDir builds a report from the configured input directory.
// POST /api/report/scan
func (s *Server) GenerateFromDir(c *gin.Context) {
	ref, err := divreport.LoadReferenceFile(s.cfg.ReferencePath())
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	dir := source.Dir{
		Path: s.cfg.Report.InputDir,
		Exclude: []string{
			filepath.Base(s.cfg.Report.ReferenceFile),
			filepath.Base(s.cfg.Report.OutputFile),
		},
	}
	s.generate(c, ref, dir)
}

// Download streams a generated workbook.
// GET /api/report/:token/download
func (s *Server) Download(c *gin.Context) {
	item, ok := s.downloads.get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found or expired"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.filename))
	c.Data(http.StatusOK, writer.ContentType, item.data)
}

func (s *Server) generate(c *gin.Context, ref *models.Reference, src source.Source) {
	opts := s.cfg.Options()
	opts.Logger = s.logger

	report, err := divreport.Generate(ref, src, opts)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	data, err := writer.Bytes(report)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	filename := filepath.Base(s.cfg.Report.OutputFile)
	token := s.downloads.put(filename, data, s.cfg.Server.DownloadTTL)

	preview := report.Records
	if n := s.cfg.Server.PreviewRows; n >= 0 && len(preview) > n {
		preview = preview[:n]
	}

	c.JSON(http.StatusOK, ReportResponse{
		Token:       token,
		Filename:    filename,
		DownloadURL: fmt.Sprintf("/api/report/%s/download", token),
		Stats:       report.Stats,
		Preview:     preview,
		Summary:     report.Summary,
	})
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("report failed", zap.Error(err))
	} else {
		s.logger.Warn("report rejected", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var fileErr *divreport.FileError
	switch {
	case errors.Is(err, divreport.ErrReferenceNotFound):
		return http.StatusNotFound
	case errors.Is(err, divreport.ErrMissingColumn), errors.Is(err, divreport.ErrUnmatchedRows):
		return http.StatusUnprocessableEntity
	case errors.Is(err, divreport.ErrNoInputFiles),
		errors.Is(err, divreport.ErrNoData),
		errors.Is(err, divreport.ErrUnsupportedFormat),
		errors.As(err, &fileErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func uploadStream(fh *multipart.FileHeader) source.Stream {
	return source.FromOpener(filepath.Base(fh.Filename), func() (io.ReadCloser, error) {
		return fh.Open()
	})
}
