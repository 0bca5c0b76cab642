package main

// General API documentation for swaggo. Run `swag init` to generate docs.
//
// @title           gend API
// @version         1.0
// @description     HTTP API for batched text generation with a bounded sequence length.
//
// @contact.name   gend maintainers
// @contact.url    https://github.com/your-org/gend
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
