package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	agentdomain "github.com/vocaai/console/internal/agent/domain"
	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
	"github.com/vocaai/console/internal/imaging"
	orderdomain "github.com/vocaai/console/internal/order/domain"
	storedomain "github.com/vocaai/console/internal/store/domain"
	"gorm.io/gorm"
)

// Every response, success or failure, uses the same envelope:
// {"status":"success","data":...} or {"status":"error","message":...}.

type successEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const fallbackMessageKey = "error.fallback"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrTooManyRequests = errors.New("too_many_requests")
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, successEnvelope{Status: "success", Data: data})
}

// withFallback sets the message used when the request fails with an error
// no mapping knows a user-facing message for.
func withFallback(c *gin.Context, message string) {
	c.Set(fallbackMessageKey, message)
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		if message == "" {
			message = fallbackMessage(c)
		}
		c.AbortWithStatusJSON(status, errorEnvelope{Status: "error", Message: message})
	}
}

func fallbackMessage(c *gin.Context) string {
	if v, ok := c.Get(fallbackMessageKey); ok {
		if msg, ok := v.(string); ok && msg != "" {
			return msg
		}
	}
	return "Something went wrong. Please try again."
}

// mapError returns the HTTP status and user-facing message for a domain
// error. An empty message means the caller's fallback applies.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid request."
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, "Too many requests. Please slow down."

	case errors.Is(err, storedomain.ErrInvalidName):
		return http.StatusBadRequest, "Store name is required."
	case errors.Is(err, storedomain.ErrInvalidHandle):
		return http.StatusBadRequest, "Store name cannot be turned into a link handle."
	case errors.Is(err, storedomain.ErrHandleTaken):
		return http.StatusConflict, "That store name is already taken."

	case errors.Is(err, agentdomain.ErrInvalidName):
		return http.StatusBadRequest, "Agent name is required."

	case errors.Is(err, catalogdomain.ErrInvalidName):
		return http.StatusBadRequest, "Catalog name is required."
	case errors.Is(err, catalogdomain.ErrInvalidAgent):
		return http.StatusBadRequest, "Select a valid agent for this catalog."
	case errors.Is(err, catalogdomain.ErrTierIndexOutOfRange),
		errors.Is(err, catalogdomain.ErrUnknownTierField),
		errors.Is(err, catalogdomain.ErrTierCountOutOfRange):
		return http.StatusBadRequest, "Invalid pricing tier."
	case errors.Is(err, catalogdomain.ErrInvalidTierValue),
		errors.Is(err, catalogdomain.ErrInvalidTierPacks),
		errors.Is(err, catalogdomain.ErrInvalidTierPrice):
		return http.StatusBadRequest, "Pricing tier values must be whole numbers."

	case errors.Is(err, imaging.ErrImageTooLarge):
		return http.StatusBadRequest, "Image exceeds the 2MB size limit."
	case errors.Is(err, imaging.ErrUnsupportedImageType):
		return http.StatusBadRequest, "Unsupported image type. Use JPEG, PNG, GIF, or WebP."
	case errors.Is(err, imaging.ErrEncodedImageTooLarge):
		return http.StatusBadRequest, "Image is too large to embed. Please use a smaller image."
	case errors.Is(err, imaging.ErrImageReadFailure):
		return http.StatusBadRequest, "Could not read the image. Please try again."

	case errors.Is(err, orderdomain.ErrCustomerNameRequired):
		return http.StatusBadRequest, "Please enter your name."
	case errors.Is(err, orderdomain.ErrCustomerPhoneRequired):
		return http.StatusBadRequest, "Please enter your phone number."
	case errors.Is(err, orderdomain.ErrEmptyCatalog),
		errors.Is(err, orderdomain.ErrTierOutOfRange):
		return http.StatusBadRequest, "The selected package is no longer available."
	case errors.Is(err, orderdomain.ErrDuplicateSubmit):
		return http.StatusConflict, "This order was just submitted. Please wait a moment before retrying."
	case errors.Is(err, orderdomain.ErrInvalidStatus):
		return http.StatusBadRequest, "Unknown order status."

	case isNotFoundError(err):
		return http.StatusNotFound, "Not found."

	case isStoreContextError(err):
		return http.StatusBadRequest, "Missing or invalid store context."

	default:
		return http.StatusInternalServerError, ""
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, storedomain.ErrNotFound),
		errors.Is(err, storedomain.ErrInvalidID),
		errors.Is(err, agentdomain.ErrNotFound),
		errors.Is(err, agentdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrNotPublic),
		errors.Is(err, catalogdomain.ErrHandleMismatch),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrCatalogNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isStoreContextError(err error) bool {
	switch {
	case errors.Is(err, agentdomain.ErrInvalidStore),
		errors.Is(err, catalogdomain.ErrInvalidStore),
		errors.Is(err, orderdomain.ErrInvalidStore):
		return true
	default:
		return false
	}
}

func classifyErrorForLog(err error) (string, string) {
	status, _ := mapError(err)
	switch {
	case status == http.StatusNotFound:
		return "not_found", err.Error()
	case status == http.StatusConflict:
		return "conflict", err.Error()
	case status == http.StatusTooManyRequests:
		return "rate_limited", err.Error()
	case status >= 400 && status < 500:
		return "validation_error", err.Error()
	default:
		return "internal_error", err.Error()
	}
}
