package relay

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/uploadrelay/auth"
	"github.com/skillsenselab/uploadrelay/docstore"
	apperrors "github.com/skillsenselab/uploadrelay/errors"
	"github.com/skillsenselab/uploadrelay/logger"
	"github.com/skillsenselab/uploadrelay/observability"
	"github.com/skillsenselab/uploadrelay/server"
)

// DocumentSender forwards a document and returns the remote reference.
type DocumentSender interface {
	SendDocument(ctx context.Context, doc docstore.Document, caption string) (*docstore.Upload, error)
}

// Config configures the upload handler.
type Config struct {
	// ForwardTimeout bounds the outbound call to the document store.
	ForwardTimeout time.Duration
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.ForwardTimeout == 0 {
		c.ForwardTimeout = 2 * time.Minute
	}
}

// Handler serves the upload endpoint.
type Handler struct {
	verifier auth.TokenVerifier
	store    DocumentSender
	config   Config
	log      *logger.Logger
}

// NewHandler creates the upload handler.
func NewHandler(verifier auth.TokenVerifier, store DocumentSender, cfg Config, log *logger.Logger) *Handler {
	cfg.ApplyDefaults()
	return &Handler{
		verifier: verifier,
		store:    store,
		config:   cfg,
		log:      log.WithComponent("relay"),
	}
}

// Upload authenticates the caller, stages the uploaded file, verifies
// ownership and forwards the file to the document store. The staged copy
// is removed on every outcome.
func (h *Handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	log := h.log.WithContext(ctx)
	metrics := observability.Uploads()

	token, err := auth.BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		metrics.RecordUpload(ctx, "unauthorized", 0)
		server.RespondWithError(c, apperrors.NoToken())
		return
	}

	identity, err := h.verifier.Verify(ctx, token)
	if err != nil {
		log.WithError(err).Warn("token verification failed")
		metrics.RecordUpload(ctx, "unauthorized", 0)
		server.RespondWithError(c, apperrors.InvalidToken(err.Error()))
		return
	}

	var req UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		metrics.RecordUpload(ctx, "invalid", 0)
		server.RespondWithError(c, apperrors.InvalidInput(err.Error()))
		return
	}
	if req.File == nil {
		metrics.RecordUpload(ctx, "invalid", 0)
		server.RespondWithError(c, apperrors.MissingFile())
		return
	}

	staged, err := Stage(req.File, log)
	if err != nil {
		log.WithError(err).Error("failed to stage upload")
		metrics.RecordUpload(ctx, "error", 0)
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer staged.Remove()

	if req.UserID != "" && req.UserID != identity.UID {
		log.Warn("ownership mismatch", logger.Fields(
			"uid", identity.UID,
		))
		staged.Remove()
		metrics.RecordUpload(ctx, "forbidden", 0)
		server.RespondWithError(c, apperrors.OwnershipMismatch())
		return
	}

	upload, err := h.forward(ctx, identity, &req, staged)
	if err != nil {
		log.WithError(err).Error("forward failed", logger.Fields(
			"file", req.EffectiveName(),
			"size", staged.Size,
		))
		metrics.RecordUpload(ctx, "rejected", 0)
		server.RespondWithError(c, err)
		return
	}

	log.Info("upload forwarded", logger.Fields(
		"uid", identity.UID,
		"file", req.EffectiveName(),
		"size", staged.Size,
		"file_id", upload.FileID,
	))
	metrics.RecordUpload(ctx, "ok", staged.Size)

	c.JSON(200, UploadResult{
		Success:   true,
		FileID:    upload.FileID,
		MessageID: upload.MessageID,
		FileName:  req.EffectiveName(),
		Size:      staged.Size,
	})
}

// forward sends the staged file to the document store. The outbound call is
// detached from the inbound request context so a client disconnect after
// the upload completes does not abort the forward mid-flight.
func (h *Handler) forward(ctx context.Context, id *auth.Identity, req *UploadRequest, staged *StagedFile) (*docstore.Upload, error) {
	ctx, span := observability.StartSpan(context.WithoutCancel(ctx), "relay.forward")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, h.config.ForwardTimeout)
	defer cancel()

	f, err := staged.Open()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer f.Close()

	caption := BuildCaption(id, req, staged.Size, time.Now())

	upload, err := h.store.SendDocument(ctx, docstore.Document{
		Name:        req.EffectiveName(),
		ContentType: req.ContentType(),
		Size:        staged.Size,
		Reader:      f,
	}, caption)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.Internal(err)
	}
	return upload, nil
}
