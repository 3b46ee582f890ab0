// Package settings provides the per-scope configuration of the
// consolidation policy. A scope is a hub code or the global fallback; the
// policy engine reads a settings snapshot once per scheduler pass.
package settings
