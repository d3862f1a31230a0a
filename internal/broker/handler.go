package broker

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mqbroker/internal/constants"
	"mqbroker/internal/logger"
	"mqbroker/internal/message"
	"mqbroker/pkg/errors"
	"mqbroker/pkg/middleware"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

func (h *Handler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/", middleware.XMLContentType())
	{
		api.POST("/sendMessage", h.SendMessage)
		api.GET("/getMessage", h.GetMessage)
		api.GET("/findMessages", h.FindMessages)
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	appErr := ToAppError(err)
	if errors.ToHTTPStatus(appErr) >= http.StatusInternalServerError {
		h.logger.ErrorwCtx(c.Request.Context(), "Request failed", "error", err, "path", c.Request.URL.Path)
	}
	middleware.RespondError(c, appErr)
}

// SendMessage godoc
// @Summary      Submit a message
// @Description  Validates the XML message and appends it to the queue unless an identical message is already queued
// @Tags         messages
// @Accept       xml
// @Produce      xml
// @Param        message  body  string  true  "<Message><Header><To/><From/><Timestamp/><Title/><Body/></Header></Message>"
// @Success      201
// @Failure      400  {object}  errors.ErrorResponse  "bad request / message already exist"
// @Failure      422  {object}  errors.ErrorResponse  "xml is incorrect"
// @Failure      500  {object}  errors.ErrorResponse
// @Router       /sendMessage [post]
func (h *Handler) SendMessage(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		middleware.RespondError(c, errors.ErrBadRequest.WithCause(err))
		return
	}

	if _, err := h.service.Send(c.Request.Context(), raw); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// GetMessage godoc
// @Summary      Consume a message
// @Description  Removes the oldest message from the queue. The message itself is not returned
// @Tags         messages
// @Produce      xml
// @Success      204
// @Failure      404  {object}  errors.ErrorResponse  "Queue is empty"
// @Failure      500  {object}  errors.ErrorResponse
// @Router       /getMessage [get]
func (h *Handler) GetMessage(c *gin.Context) {
	if _, err := h.service.Consume(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FindMessages godoc
// @Summary      Query messages
// @Description  Returns every queued message matching all keys of the JSON filter, in arrival order. The date key is compared as DD.MM.YYYY
// @Tags         messages
// @Accept       json
// @Produce      xml
// @Param        filter  body  FilterRequest  true  "Filter with 1 to 4 keys"
// @Success      200  {string}  string  "<Messages>...</Messages>"
// @Failure      400  {object}  errors.ErrorResponse  "bad request / filter violation"
// @Failure      404  {object}  errors.ErrorResponse  "Queue is empty / message not found"
// @Failure      500  {object}  errors.ErrorResponse
// @Router       /findMessages [get]
func (h *Handler) FindMessages(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		middleware.RespondError(c, errors.ErrBadRequest.WithCause(err))
		return
	}

	records, err := h.service.Find(c.Request.Context(), raw)
	if err != nil {
		h.handleError(c, err)
		return
	}

	body, err := message.EncodeMessages(records)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Data(http.StatusOK, constants.ContentTypeXML, body)
}

// FilterRequest documents the findMessages body.
type FilterRequest struct {
	Filter FilterFields `json:"filter"`
}

type FilterFields struct {
	To    string `json:"to,omitempty" example:"alice"`
	From  string `json:"from,omitempty" example:"bob"`
	Date  string `json:"date,omitempty" example:"01.05.2023"`
	Title string `json:"title,omitempty" example:"hello"`
}
