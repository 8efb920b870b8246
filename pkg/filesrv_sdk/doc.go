// Package filesrv_sdk bootstraps a file server client from the environment.
// FILESRV_RUNTIME_MODE selects "http", "mock" or "auto" (the default); auto
// uses HTTP when FILESRV_API_URL is set and an in-memory mock otherwise. The
// mock is API compatible with the HTTP client, including its 401 and 404
// failures.
package filesrv_sdk
