package core

import apperrors "clinicbook/pkg/errors"

func IsMissing(str string) bool {
	return len(str) == 0
}

func MissingParamErr(paramName string) error {
	return apperrors.InvalidInput("required param [" + paramName + "] is missing")
}
