// Package loader registers HTTP features and mounts the enabled ones.
//
// A Feature names itself, reports whether it is enabled and mounts its routes
// on the router it is given. The Manager keeps them in registration order;
// LoadAll skips disabled features and stops at the first mount error.
//
//	m := loader.NewManager(logger)
//	m.Register(resources.NewFeature(l, kinds, logger))
//	m.Register(integrity.NewFeature(client, bucket, prefix, marker, tables, db, logger))
//	err := m.LoadAll(app)
package loader
