package sync

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
)

// DecodeSettings builds Settings from a raw configuration map, starting from
// the defaults so that missing keys keep their default values.
func DecodeSettings(raw map[string]interface{}) (models.Settings, error) {
	settings := models.DefaultSettings()
	if raw == nil {
		return settings, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return settings, fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return settings, fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}
