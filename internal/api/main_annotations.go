// @title           API Docs
// @version         1.0
// @description     Read-only access to the endpoint catalog: filtered views, single endpoints, generated code examples and statistics.
// @BasePath        /api/v1
package api
