package utils

import (
	"fmt"
)

type ServiceError struct {
	Code uint32
	Msg  string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ServiceError: code=%d, msg=%s", e.Code, e.Msg)
}

var (
	// business error code: [500000, 600000)
	ErrOpenCsv      = &ServiceError{500001, "open csv error"}
	ErrReadCsv      = &ServiceError{500002, "read csv error"}
	ErrParameter    = &ServiceError{500005, "invalid parameter"}
	ErrEmptyDataset = &ServiceError{500006, "empty dataset"}
	ErrLabelSize    = &ServiceError{500007, "label size mismatch"}
	ErrRowFilter    = &ServiceError{500008, "row filter eval error"}
	ErrOpenTxn      = &ServiceError{500009, "open transactions error"}
	ErrParseTxn     = &ServiceError{500010, "parse transactions error"}
)
