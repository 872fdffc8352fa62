/*
Package ports defines the driving port shared by the schematic adapters.

The HTTP and MCP adapters depend on the Catalog interface rather than on the
concrete schematic.Catalog, so that hosts can wrap it (for caching, auth or
multi-tenant routing) without touching the adapters.

# Key Interfaces

  - Catalog: lists kinds, describes them and validates plain data against them.
*/
package ports
