package handler

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

// RequestValidator validates bound request structs and reports failures by
// their form field names.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Fields returns field -> message for every failed rule, or nil when the
// struct is valid.
func (rv *RequestValidator) Fields(s any) map[string]string {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", capitalize(label))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", capitalize(label), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", capitalize(label), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", capitalize(label))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// bind parses the body (JSON, urlencoded or multipart) and trims string fields.
func bind(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return err
	}
	trimStrings(reflect.ValueOf(out).Elem())
	return nil
}

func trimStrings(v reflect.Value) {
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		switch {
		case f.Kind() == reflect.String && f.CanSet():
			f.SetString(strings.TrimSpace(f.String()))
		case f.Kind() == reflect.Struct && v.Type().Field(i).Anonymous:
			trimStrings(f)
		}
	}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// formFiles turns the multipart files under field (or field[]) into uploads.
func formFiles(c *fiber.Ctx, field string) []usecase.Upload {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	headers := append(form.File[field], form.File[field+"[]"]...)
	out := make([]usecase.Upload, 0, len(headers))
	for _, fh := range headers {
		out = append(out, usecase.Upload{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
		})
	}
	return out
}

// formIDs collects integer values submitted under field (or field[]).
// Unparseable entries are ignored.
func formIDs(c *fiber.Ctx, field string) []int64 {
	var raw []string
	if form, err := c.MultipartForm(); err == nil {
		raw = append(form.Value[field], form.Value[field+"[]"]...)
	} else if v := c.FormValue(field); v != "" {
		raw = strings.Split(v, ",")
	}
	out := make([]int64, 0, len(raw))
	for _, s := range raw {
		if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}
