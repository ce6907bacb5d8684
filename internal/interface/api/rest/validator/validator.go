package validator

import (
	"errors"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"file-drive-api/internal/domain/file"
	dto "file-drive-api/internal/interface/api/rest/dto/file"
)

const (
	maxNameLen  = 255
	maxOrgIDLen = 128
)

var (
	storageIDRe = regexp.MustCompile(`^uploads/\S+$`)
	orgIDRe     = regexp.MustCompile(`^[A-Za-z0-9_\-:.]+$`)

	ErrInvalidFlag = errors.New("must be true or false")
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ParseFlag accepts an absent query flag as false.
func ParseFlag(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, ErrInvalidFlag
	}
	return b, nil
}

func ValidateOrgID(orgID string) error {
	return validation.Validate(orgID,
		validation.Required,
		validation.Length(1, maxOrgIDLen),
		validation.Match(orgIDRe),
	)
}

func ValidateCreateFile(r dto.CreateRequest) map[string]string {
	types := make([]interface{}, len(file.Types))
	for i, t := range file.Types {
		types[i] = string(t)
	}

	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, maxNameLen)),
		validation.Field(&r.Type, validation.Required, validation.In(types...)),
		validation.Field(&r.StorageID, validation.Required, validation.Match(storageIDRe)),
	)

	return toMap(err)
}

func toMap(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for field, e := range verrs {
		errs[field] = e.Error()
	}
	return errs
}
