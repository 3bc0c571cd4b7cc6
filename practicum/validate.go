package practicum

import (
	"fmt"
	"log/slog"

	"homework-notifier/model"
)

// Validate checks the decoded API answer and converts it to a model.Response.
// Checks run in a fixed order and the first failure is returned.
func Validate(payload any) (*model.Response, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, invalid("response is not an object", model.ErrTypeMismatch)
	}
	rawHomeworks, ok := obj["homeworks"]
	if !ok {
		return nil, invalid("response has no homeworks key", model.ErrMissingKey)
	}
	rawDate, ok := obj["current_date"]
	if !ok {
		return nil, invalid("response has no current_date key", model.ErrMissingKey)
	}
	list, ok := rawHomeworks.([]any)
	if !ok {
		return nil, invalid("homeworks value is not a list", model.ErrTypeMismatch)
	}

	homeworks := make([]model.Homework, 0, len(list))
	for i, item := range list {
		hw, ok := item.(map[string]any)
		if !ok {
			return nil, invalid(fmt.Sprintf("homeworks[%d] is not an object", i), model.ErrTypeMismatch)
		}
		homeworks = append(homeworks, model.Homework(hw))
	}

	// JSON numbers decode as float64; anything else leaves the date unset.
	var currentDate int64
	if f, ok := rawDate.(float64); ok {
		currentDate = int64(f)
	}

	return &model.Response{Homeworks: homeworks, CurrentDate: currentDate}, nil
}

func invalid(msg string, err error) error {
	slog.Error(msg)
	return model.NewError(model.KindMalformedResponse, msg, err)
}
