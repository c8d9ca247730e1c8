// Package manifest reads inclusion lists such as code_to_aggregate.txt.
//
// Each line of a manifest names a file or a directory relative to the folder
// being aggregated. Lines starting with "//" are comments, and anything after
// "//" on a line is dropped. Sibling paths can be written once with braces:
//
//	src:{main.rs, ecs:{components, light.rs}}
//
// expands to src/main.rs, src/ecs/components and src/ecs/light.rs.
package manifest
