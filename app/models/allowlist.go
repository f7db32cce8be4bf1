package models

// Per-role writable profile fields. Defined once next to the schemas so the
// allow-lists cannot drift from the models. This is the sole authorization
// boundary for profile writes; note that the platform "role" is writable for
// no one, and admins write jobTitle, never role.
var writableFields = map[Role][]string{
	RoleStudent: {"fullName", "rollNumber", "email", "phone", "gender", "department", "programAndYear", "bio", "avatarUrl"},
	RoleFaculty: {"fullName", "department", "phone", "bio", "avatarUrl", "email"},
	RoleAdmin:   {"fullName", "jobTitle", "phone", "bio", "avatarUrl", "email"},
}

// WritableFields returns the allow-list for a role. The slice is shared;
// callers must not mutate it.
func WritableFields(role Role) []string {
	return writableFields[role]
}

// FilterPatch keeps only the keys of patch that the role may write.
// Disallowed keys are dropped silently, not rejected.
func FilterPatch(role Role, patch map[string]any) map[string]any {
	allowed := writableFields[role]
	filtered := make(map[string]any, len(patch))
	for _, field := range allowed {
		if v, ok := patch[field]; ok {
			filtered[field] = v
		}
	}
	return filtered
}
