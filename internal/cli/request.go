package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/pipeline"
)

// LoadRequest reads an engraving request from a TOML file.
//
// Example request:
//
//	title = "batch 2043-A"
//	rotation = 90
//	vertical_offset = 1.5
//
//	[barcode]
//	data = "ARR-2043-A"
//	x = 70.0
//	y = 105.0
//	size = 8.0
//
//	[[slot]]
//	position = 1
//	identifier = 123454
//	label = "PSU-L"
//	[slot.led]
//	1 = "K7P"
//	2 = "0F3"
func LoadRequest(path string) (pipeline.Request, error) {
	var req pipeline.Request

	data, err := os.ReadFile(path)
	if err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidConfiguration, err,
			"read request %s", path)
	}
	if err := toml.Unmarshal(data, &req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidConfiguration, err,
			"parse request %s", path)
	}
	if len(req.Slots) == 0 {
		return req, errors.New(errors.ErrCodeMissingRequiredField,
			"request %s has no slots", path)
	}
	return req, nil
}
