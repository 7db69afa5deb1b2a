package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"devconnector/internal/app"
	"devconnector/internal/github"
	"devconnector/internal/transport/http/middleware"
	"devconnector/internal/transport/http/response"
)

// ForbiddenStatus is what an authenticated but unentitled caller receives.
// Existing clients only handle 401 for ownership failures.
const ForbiddenStatus = http.StatusUnauthorized

var registerTagNames sync.Once

// bindJSON decodes the body into dst, rejecting unknown fields, validates
// it and writes a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	registerTagNames.Do(useJSONFieldNames)

	err := decodeStrict(c.Request, dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]response.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, response.FieldError{Param: fe.Field(), Msg: fieldMessage(fe)})
		}
		response.Errors(c, http.StatusBadRequest, fields...)
		return false
	}
	response.Errors(c, http.StatusBadRequest, response.FieldError{Msg: "Invalid request payload"})
	return false
}

func decodeStrict(req *http.Request, dst interface{}) error {
	if req.Body == nil {
		return errors.New("missing request body")
	}
	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(dst)
}

func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	label := field
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please include a valid email"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "max":
		return label + " must be at most " + fe.Param() + " characters"
	default:
		return label + " is invalid"
	}
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Msg(c, http.StatusUnauthorized, "Token not valid")
		return 0, false
	}
	return userID, true
}

// writeError maps service errors onto the wire. Anything unrecognized is
// logged and reported as a 500.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]response.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, response.FieldError{Param: f.Param, Msg: f.Msg})
		}
		response.Errors(c, http.StatusBadRequest, fields...)
	case errors.Is(err, app.ErrInvalidCredential):
		response.Errors(c, http.StatusBadRequest, response.FieldError{Msg: "Invalid credentials"})
	case errors.Is(err, app.ErrUserExists):
		response.Errors(c, http.StatusBadRequest, response.FieldError{Msg: "User already exists"})
	case errors.Is(err, app.ErrTooManyAttempts):
		response.Msg(c, http.StatusTooManyRequests, "Too many login attempts, try again later")
	case errors.Is(err, app.ErrForbidden):
		response.Msg(c, ForbiddenStatus, "User not authorized")
	case errors.Is(err, app.ErrUserNotFound):
		response.Msg(c, http.StatusNotFound, "User not found")
	case errors.Is(err, app.ErrProfileNotFound):
		response.Msg(c, http.StatusNotFound, "There is no profile for this user")
	case errors.Is(err, app.ErrExperienceNotFound):
		response.Msg(c, http.StatusNotFound, "Experience not found")
	case errors.Is(err, app.ErrEducationNotFound):
		response.Msg(c, http.StatusNotFound, "Education not found")
	case errors.Is(err, app.ErrPostNotFound):
		response.Msg(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, app.ErrCommentNotFound):
		response.Msg(c, http.StatusNotFound, "Comment does not exist")
	case errors.Is(err, github.ErrNotFound):
		response.Msg(c, http.StatusNotFound, "No Github profile found")
	default:
		logger.ErrorContext(c.Request.Context(), op+" failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("err", err),
		)
		response.Msg(c, http.StatusInternalServerError, "Server error")
	}
}
