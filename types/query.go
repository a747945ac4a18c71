package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const DefaultQueryLimit = 5

type Validater interface {
	Validate() map[string]string
}

type QueryParams struct {
	Query          string   `json:"query" validate:"required"`
	Limit          int      `json:"limit" validate:"omitempty,gte=1,lte=50"`
	ScoreThreshold *float64 `json:"score_threshold" validate:"omitempty,gte=0,lte=1"`
}

type ChatParams struct {
	Message string `json:"message" validate:"required"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func (params *QueryParams) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

func (params *ChatParams) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}
