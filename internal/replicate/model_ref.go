package replicate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModelRef - ссылка на модель не в формате owner/name:version.
var ErrInvalidModelRef = errors.New("invalid model reference")

// ModelRef - закрепленная ревизия модели Replicate.
type ModelRef struct {
	Owner   string
	Name    string
	Version string
}

// ParseModelRef разбирает строку вида "owner/name:version".
func ParseModelRef(ref string) (ModelRef, error) {
	ref = strings.TrimSpace(ref)
	path, version, found := strings.Cut(ref, ":")
	if !found || version == "" {
		return ModelRef{}, fmt.Errorf("%w: %q has no version", ErrInvalidModelRef, ref)
	}
	owner, name, found := strings.Cut(path, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return ModelRef{}, fmt.Errorf("%w: %q must look like owner/name:version", ErrInvalidModelRef, ref)
	}
	return ModelRef{Owner: owner, Name: name, Version: version}, nil
}

func (m ModelRef) String() string {
	return m.Owner + "/" + m.Name + ":" + m.Version
}
