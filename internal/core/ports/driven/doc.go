// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AuthAPI: credential exchange with the auth backend
//   - ChatAPI: scope-qualified questions to the assistant backend
//   - IngestionAPI: authenticated document upload and remote file listing
//   - HierarchySource: the static territorial reference dataset
//   - SessionRecordStore: durable persistence of the session record
//
// # Optional Interfaces
//
//   - TerritoryCache: local cache of the territorial dataset; without it
//     every process start fetches the dataset over the network
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
