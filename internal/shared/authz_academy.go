package shared

// Academy permissions cover students, courses, batches, enrollments and
// discount codes.
const (
	PermStudentsRead   = "students:read"
	PermStudentsCreate = "students:create"
	PermStudentsUpdate = "students:update"
	PermStudentsDelete = "students:delete"

	PermCoursesRead   = "courses:read"
	PermCoursesCreate = "courses:create"
	PermCoursesUpdate = "courses:update"
	PermCoursesDelete = "courses:delete"

	PermBatchesRead   = "batches:read"
	PermBatchesCreate = "batches:create"
	PermBatchesUpdate = "batches:update"
	PermBatchesDelete = "batches:delete"

	PermEnrollmentsRead   = "enrollments:read"
	PermEnrollmentsCreate = "enrollments:create"
	PermEnrollmentsUpdate = "enrollments:update"
	PermEnrollmentsDelete = "enrollments:delete"

	PermDiscountCodesRead   = "discount_codes:read"
	PermDiscountCodesCreate = "discount_codes:create"
	PermDiscountCodesUpdate = "discount_codes:update"
	PermDiscountCodesDelete = "discount_codes:delete"
)

// AcademyScopes lists all academy-side permissions.
func AcademyScopes() []string {
	return []string{
		PermStudentsRead,
		PermStudentsCreate,
		PermStudentsUpdate,
		PermStudentsDelete,
		PermCoursesRead,
		PermCoursesCreate,
		PermCoursesUpdate,
		PermCoursesDelete,
		PermBatchesRead,
		PermBatchesCreate,
		PermBatchesUpdate,
		PermBatchesDelete,
		PermEnrollmentsRead,
		PermEnrollmentsCreate,
		PermEnrollmentsUpdate,
		PermEnrollmentsDelete,
		PermDiscountCodesRead,
		PermDiscountCodesCreate,
		PermDiscountCodesUpdate,
		PermDiscountCodesDelete,
	}
}
