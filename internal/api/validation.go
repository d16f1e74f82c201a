package api

import (
	"errors"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"alcyxob/run-trainer/internal/domain"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by the request DTOs:
// "calendardate" (YYYY-MM-DD string) and "pace" (seconds per mile in range).
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		if err = v.RegisterValidation("calendardate", validCalendarDate); err != nil {
			return
		}
		err = v.RegisterValidation("pace", validPace)
	})
	return err
}

func validCalendarDate(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := domain.ParseDate(s)
	return err == nil
}

func validPace(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		p := fl.Field().Int()
		return p >= domain.MinPace && p <= domain.MaxPace
	}
	return false
}
