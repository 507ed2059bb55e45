package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-onboarding/pkg/render"
	"github.com/goliatone/go-onboarding/pkg/steps"
)

var genderOptions = []string{"Male", "Female", "Other"}

type numericRange struct {
	min, max float64
	unit     string
}

var pickerRanges = map[steps.PickerType]numericRange{
	steps.PickerAge:    {min: 1, max: 120, unit: "years"},
	steps.PickerHeight: {min: 50, max: 272, unit: "cm"},
	steps.PickerWeight: {min: 20, max: 400, unit: "kg"},
}

func (r *Renderer) renderPicker(ctx context.Context, req render.Request, next render.Continue) error {
	p, _ := req.Step.Picker()
	s := newStyles(req.Theme)
	if err := r.header(ctx, req, s, p.Title, deref(p.Description)); err != nil {
		return err
	}

	switch p.PickerType {
	case steps.PickerAge, steps.PickerHeight, steps.PickerWeight:
		value, err := r.promptNumber(ctx, p, pickerRanges[p.PickerType])
		if err != nil {
			return err
		}
		next(value)
	case steps.PickerGender:
		idx, err := r.driver.Select(ctx, SelectConfig{Message: p.Title, Options: genderOptions, DefaultIndex: -1})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(genderOptions) {
			return ErrInvalidSelection
		}
		next(strings.ToLower(genderOptions[idx]))
	case steps.PickerDate:
		value, err := r.promptText(ctx, p.Title, "YYYY-MM-DD", func(v string) error {
			_, err := time.Parse(time.DateOnly, v)
			return err
		})
		if err != nil {
			return err
		}
		next(value)
	default:
		value, err := r.promptText(ctx, p.Title, "", nil)
		if err != nil {
			return err
		}
		next(value)
	}
	return nil
}

func (r *Renderer) promptNumber(ctx context.Context, p steps.PickerPayload, bounds numericRange) (float64, error) {
	label := fmt.Sprintf("%s (%s)", p.Title, bounds.unit)
	for {
		input, err := r.driver.Input(ctx, InputConfig{Message: label})
		if err != nil {
			return 0, err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", p.PickerType, err))
			continue
		}
		if value < bounds.min || value > bounds.max {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: must be between %g and %g", p.PickerType, bounds.min, bounds.max))
			continue
		}
		return value, nil
	}
}

func (r *Renderer) promptText(ctx context.Context, label, help string, validate func(string) error) (string, error) {
	for {
		input, err := r.driver.Input(ctx, InputConfig{Message: label, Help: help})
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			_ = r.driver.Info(ctx, "A value is required")
			continue
		}
		if validate != nil {
			if err := validate(input); err != nil {
				_ = r.driver.Info(ctx, fmt.Sprintf("Invalid value: %v", err))
				continue
			}
		}
		return input, nil
	}
}
