package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// files
	RouteUploadURL = RouteApiV1 + "/files/upload-url"
	RouteOrgFiles  = RouteApiV1 + "/orgs/:org_id/files"
	RouteFile      = RouteApiV1 + "/files/:file_id"
	RouteFavorite  = RouteFile + "/favorite"

	// identity provider
	RouteIdentityWebhook = RouteApiV1 + "/webhooks/identity"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
