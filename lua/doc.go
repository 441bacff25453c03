// Package lua binds the world boundary into a gopher-lua VM.
//
// Scripts see a global "world" table. Every function returns its
// result followed by a status slot: nil on success, the numeric
// boundary code on failure.
//
//	local player, err = world.resolve_entity("Player")
//	if err then return end
//	local t = world.get_transform(player)
//	t.position.y = t.position.y + 1
//	world.set_transform(player, t)
//
// Key and mouse button codes are published as world.keys and
// world.buttons so scripts never hard-code numbers.
package lua
