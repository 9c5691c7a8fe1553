package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteProducts is the public products route.
	RouteProducts = "/products"
	// RouteCategory is the public category route.
	RouteCategory = "/category/{slug}"
	// RouteContact is the public contact route.
	RouteContact = "/contact"
	// RouteBlog is the public blog route.
	RouteBlog = "/blog"
	// RouteHealth is the health check route.
	RouteHealth = "/health"

	// Admin route prefixes, mounted under /admin.
	RouteAdminProducts   = "/products"
	RouteAdminCategories = "/categories"
	RouteAdminReviews    = "/reviews"
	RouteAdminSlider     = "/slider"
	RouteAdminSlideshow  = "/slideshow"
	RouteAdminMenu       = "/menu"
	RouteAdminPages      = "/pages"
	RouteAdminMessages   = "/messages"
	RouteAdminSettings   = "/settings"
	RouteAdminEvents     = "/events"
	RouteAdminCache      = "/cache"

	redirectAdmin = "/admin"
	redirectLogin = "/login"
)

// Common Arabic flash messages.
const (
	msgInvalidForm  = "بيانات النموذج غير صالحة"
	msgNotFound     = "السجل غير موجود"
	msgSaveFailed   = "فشل الحفظ، حاول مرة أخرى"
	msgSaved        = "تم الحفظ بنجاح"
	msgDeleted      = "تم الحذف بنجاح"
	msgDeleteFailed = "فشل الحذف، حاول مرة أخرى"
)
