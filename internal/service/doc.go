// Package service contains the application services that orchestrate domain
// entities, stores and transactions on behalf of the HTTP layer.
package service
