package output

import (
	"encoding/json"

	"github.com/pranshuparmar/portwho/pkg/model"
)

func ToJSON(records []model.OwnershipRecord) (string, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
