package cli

import (
	"errors"

	"github.com/kenny-evitt/bmx-fogbugz/internal/fogbugz"
)

func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, fogbugz.ErrUnauthorized) {
		return 3
	}
	var remoteErr fogbugz.RemoteError
	if errors.As(err, &remoteErr) {
		return 4
	}
	if errors.Is(err, fogbugz.ErrUnavailable) {
		return 5
	}
	var versionErr fogbugz.VersionError
	if errors.As(err, &versionErr) {
		return 6
	}
	var statusErr fogbugz.UnknownStatusError
	if errors.As(err, &statusErr) {
		return 2
	}
	return 1
}
