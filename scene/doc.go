// Package scene loads TOML scene files into a world.
//
// A scene declares entities in order; parents must appear before
// children, and cameras attach to entities by label. Properties carry
// an explicit type tag so an integer in the file never silently
// becomes a double in the world:
//
//	[[entities]]
//	label = "Player"
//	[entities.transform]
//	position = [0.0, 1.0, 0.0]
//	[entities.properties]
//	health = { type = "int", value = 100 }
//
//	[[cameras]]
//	label = "main"
//	entity = "Player"
//	fovy = 60.0
package scene
