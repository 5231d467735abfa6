package wasm

import (
	"context"
	"hash/fnv"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/opaque"
	"github.com/wippyai/opaque/export"
)

// ModuleName is the import namespace guests use for handle operations.
const ModuleName = "opaque/handles"

const invalidCount = 0xFFFFFFFF // -1 as uint32

// Host exposes an export table to WebAssembly guests as a wazero host
// module. Guests hold integer ids; every id maps to an opaque provider
// on the host side, so guest code can alias, share, and drop objects
// without ever seeing a host pointer.
type Host struct {
	table *export.Table
}

// NewHost creates a host over the given export table.
func NewHost(table *export.Table) *Host {
	return &Host{table: table}
}

// Table returns the underlying export table.
func (h *Host) Table() *export.Table {
	return h.table
}

// Instantiate builds and instantiates the host module on r.
//
// Exported functions:
//
//	clone(id: i32) -> i32      new id sharing ownership, 0 on failure
//	drop(id: i32) -> i32       1 if the id was live, 0 otherwise
//	count(id: i32) -> i32      additional shares of the object, -1 if invalid
//	type_hash(id: i32) -> i64  FNV-1a hash of the recorded type name, 0 if invalid
//	live() -> i32              number of live exported ids
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(ModuleName)

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(h.clone(export.ID(stack[0])))
		}), []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}).
		Export("clone")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			if h.table.Drop(export.ID(stack[0])) {
				stack[0] = 1
			} else {
				stack[0] = 0
			}
		}), []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}).
		Export("drop")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(h.count(export.ID(stack[0])))
		}), []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}).
		Export("count")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = h.typeHash(export.ID(stack[0]))
		}), []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI64}).
		Export("type_hash")

	builder = builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = uint64(h.table.Len())
		}), nil, []api.ValueType{api.ValueTypeI32}).
		Export("live")

	return builder.Instantiate(ctx)
}

func (h *Host) clone(id export.ID) export.ID {
	p, ok := h.table.Get(id)
	if !ok {
		return 0
	}
	a, ok := p.(opaque.Aliaser)
	if !ok {
		return 0
	}
	nid, err := h.table.Put(a.NewRef())
	if err != nil {
		return 0
	}
	return nid
}

func (h *Host) count(id export.ID) uint32 {
	p, ok := h.table.Get(id)
	if !ok {
		return invalidCount
	}
	c, ok := p.(opaque.Castable)
	if !ok {
		return invalidCount
	}
	return uint32(c.Count())
}

// typeHash lets guests compare type identity across the boundary
// without the host revealing, or the guest trusting, a type name.
func (h *Host) typeHash(id export.ID) uint64 {
	p, ok := h.table.Get(id)
	if !ok {
		return 0
	}
	f := fnv.New64a()
	f.Write([]byte(p.TypeName()))
	return f.Sum64()
}
