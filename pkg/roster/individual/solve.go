package individual

import (
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/sat"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// solve invokes the external CP-SAT solver with the configured wall-time and
// worker knobs. Isolated in its own file because the parameter proto is the
// one part of this package that talks directly to the generated protobuf
// types rather than the cpmodel builder surface.
func solve(m *cmpb.CpModelProto, params Params) (*cmpb.CpSolverResponse, error) {
	satParams := sppb.SatParameters_builder{
		MaxTimeInSeconds: &params.MaxTimeSeconds,
		NumWorkers:       int32Ptr(int32(params.NumWorkers)),
	}.Build()

	return cpmodel.SolveCpModelWithParameters(m, satParams)
}

func int32Ptr(v int32) *int32 {
	return &v
}
