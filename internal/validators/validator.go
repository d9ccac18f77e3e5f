// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-health-keeper/models"
)

// Custom tag names registered on top of the go-playground built-ins.
const (
	TagEntityKind  = "entity_kind"
	TagAuditAction = "audit_action"
)

// StructValidator validates tagged model structs with go-playground/validator.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator builds a [Validator] with the application's custom
// tags registered. Field names in errors use the json tag.
func NewStructValidator() (Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(TagEntityKind, validateEntityKind); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagEntityKind, err)
	}
	if err := v.RegisterValidation(TagAuditAction, validateAuditAction); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagAuditAction, err)
	}

	return &StructValidator{validate: v}, nil
}

// Validate implements [Validator]. When fields are given only those struct
// fields (by Go name) are checked.
func (v *StructValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if obj == nil {
		return ErrUnsupportedType
	}
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	for _, f := range fields {
		if _, ok := t.FieldByName(f); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
	}

	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func validateEntityKind(fl validator.FieldLevel) bool {
	return models.EntityKind(fl.Field().String()).Valid()
}

func validateAuditAction(fl validator.FieldLevel) bool {
	return models.AuditAction(fl.Field().String()).Valid()
}
