package validation

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dd0wney/cluso-gridsim/pkg/grid"
	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxNameLength bounds node display names
	MaxNameLength = 64
)

// Graph-level validation failures
var (
	ErrDuplicateNodeID     = errors.New("duplicate node id")
	ErrDuplicateEdgeID     = errors.New("duplicate edge id")
	ErrUnknownEndpoint     = errors.New("edge references unknown node")
	ErrSelfLoop            = errors.New("self loops are not allowed")
	ErrDuplicateLine       = errors.New("duplicate line between the same pair of nodes")
	ErrLoadExceedsCapacity = errors.New("load exceeds capacity")
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("namelen", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) <= MaxNameLength
	})
}

// NodeSpec is the checked shape of a node entering the engine
type NodeSpec struct {
	ID          int     `json:"id" validate:"gte=0"`
	Name        string  `json:"name" validate:"namelen"`
	Load        float64 `json:"load" validate:"gte=0"`
	MaxCapacity float64 `json:"maxCapacity" validate:"gt=0"`
}

// EdgeSpec is the checked shape of a transmission line entering the engine
type EdgeSpec struct {
	ID       int     `json:"id" validate:"gte=0"`
	From     int     `json:"from" validate:"gte=0"`
	To       int     `json:"to" validate:"gte=0,nefield=From"`
	Load     float64 `json:"load" validate:"gte=0"`
	Capacity float64 `json:"capacity" validate:"gt=0"`
}

// GraphOptions tunes ValidateGraph
type GraphOptions struct {
	// StrictLoad rejects nodes whose load already exceeds maxCapacity
	StrictLoad bool
}

// ValidateNode validates a single node
func ValidateNode(n grid.Node) error {
	spec := NodeSpec{ID: n.ID, Name: n.Name, Load: n.Load, MaxCapacity: n.MaxCapacity}
	if err := validate.Struct(spec); err != nil {
		return fmt.Errorf("node %d: %w", n.ID, formatValidationError(err))
	}
	return nil
}

// ValidateEdge validates a single edge in isolation
func ValidateEdge(e grid.Edge) error {
	spec := EdgeSpec{ID: e.ID, From: e.From, To: e.To, Load: e.Load, Capacity: e.Capacity}
	if err := validate.Struct(spec); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 && ve[0].Tag() == "nefield" {
			return fmt.Errorf("edge %d: %w", e.ID, ErrSelfLoop)
		}
		return fmt.Errorf("edge %d: %w", e.ID, formatValidationError(err))
	}
	return nil
}

// ValidateGraph checks a snapshot before it is handed to the engine. All
// problems are collected and returned joined.
func ValidateGraph(g grid.Graph, opts GraphOptions) error {
	var errs []error

	nodeIDs := make(map[int]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if nodeIDs[n.ID] {
			errs = append(errs, fmt.Errorf("node %d: %w", n.ID, ErrDuplicateNodeID))
			continue
		}
		nodeIDs[n.ID] = true

		if err := ValidateNode(n); err != nil {
			errs = append(errs, err)
			continue
		}
		if opts.StrictLoad && n.Load > n.MaxCapacity {
			errs = append(errs, fmt.Errorf("node %d: %w (%.1f > %.1f)", n.ID, ErrLoadExceedsCapacity, n.Load, n.MaxCapacity))
		}
	}

	edgeIDs := make(map[int]bool, len(g.Edges))
	lines := make(map[[2]int]int, len(g.Edges))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			errs = append(errs, fmt.Errorf("edge %d: %w", e.ID, ErrDuplicateEdgeID))
			continue
		}
		edgeIDs[e.ID] = true

		if err := ValidateEdge(e); err != nil {
			errs = append(errs, err)
			continue
		}
		if !nodeIDs[e.From] || !nodeIDs[e.To] {
			errs = append(errs, fmt.Errorf("edge %d (%d-%d): %w", e.ID, e.From, e.To, ErrUnknownEndpoint))
			continue
		}

		key := [2]int{min(e.From, e.To), max(e.From, e.To)}
		if first, ok := lines[key]; ok {
			errs = append(errs, fmt.Errorf("edge %d duplicates edge %d: %w", e.ID, first, ErrDuplicateLine))
			continue
		}
		lines[key] = e.ID
	}

	return errors.Join(errs...)
}

// ValidateLoadIncrease validates the load increase a caller asks to simulate
func ValidateLoadIncrease(percent float64) error {
	return NewConfigValidator("simulation").
		RangeFloat("loadIncreasePercent", percent, 0, 100).
		Validate()
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "namelen":
			return fmt.Errorf("%s: must not exceed %d characters", field, MaxNameLength)
		case "nefield":
			return fmt.Errorf("%s: must differ from %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
