package worksettings

import "errors"

var (
	ErrWorkSettingsNotFound = errors.New("work settings not found")
)
