package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bloodconnect/internal/common"
)

var (
	// ErrValidation marks input rejected before it reaches the store or the
	// network.
	ErrValidation = common.ErrorValidation

	// ErrDonorExists is returned when a donor with the same phone and blood
	// group is already registered.
	ErrDonorExists = fmt.Errorf("donor %w", common.ErrorAlreadyExists)

	// ErrSubmissionFailed means the contact endpoint answered with a non-2xx
	// status.
	ErrSubmissionFailed = errors.New("contact submission failed")

	// ErrUnavailable means the contact endpoint could not be reached.
	ErrUnavailable = fmt.Errorf("contact endpoint: %w", common.ErrorUnavailable)

	// errCorruptSlot wraps JSON decoding failures of persisted slots.
	errCorruptSlot = errors.New("corrupt slot")
)
