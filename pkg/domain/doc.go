package domain

// domain package contains the Domain Models and Interfaces of modelplane.
//
// `domain/modelplane` exposes the root object for the application.
// Entrypoints instantiate the Modelplane object and use it to interact with
// the domain.
//
// `domain/ENTITY.go` (in this package) has high-level entity types shared
// across the system.
//
// `domain/ENTITY` directories hold the "physical" representation of each
// entity: `db` subpackages speak to the relational store, `k8s` subpackages
// to the cluster.
//
// # Entities
//
// - `project`: a tenant boundary owning models, deployments and memberships.
// Creating a project provisions a dedicated model registry instance in the
// cluster; removing it cascades to the project's namespace and records.
//
// - `user`: platform account with a global role, plus per-project roles
// recorded as memberships. Project roles gate every mutating operation.
//
// - `deployment`: a running prediction service for one
// (project, model, version) triple. Deploying builds a container image from
// the registry artifact and declares namespace/service/workload plus
// best-effort monitoring resources.
//
// - `registry`: per-project artifact registry connections, pooled with
// time-based eviction.
//
// - `task`: opaque handles tracking asynchronous deploy/undeploy progress.
//
// - `event`: append-only audit trail written by every mutating use case.
