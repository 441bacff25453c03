// Package guest exposes the world boundary to WebAssembly guests as a
// wazero host module.
//
// Guests import functions from the "sim:world/bridge" namespace. Every
// export returns an i32 status code; results travel through
// out-pointers into guest linear memory. Opaque host objects such as
// sessions never cross as pointers: the host hands the guest a u32
// reference minted by a RefTable, and resolves it back on every call.
//
// Variable-length results (pressed key lists, entity labels) are
// lowered into guest memory using the guest's own exported allocator
// (world_alloc / world_free), so the guest frees what it receives with
// the same allocator that produced it. Fixed-size records use the
// packed little-endian layouts in layout.go, which only ever grow at
// the tail.
package guest
