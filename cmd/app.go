package cmd

import (
	"scaffold-wizard/core/config"
	"scaffold-wizard/core/database"
	"scaffold-wizard/core/generate"
	"scaffold-wizard/core/manifest"
	"scaffold-wizard/core/schema"
	"scaffold-wizard/core/storage"
	"scaffold-wizard/core/store"
	"scaffold-wizard/feature/wizard"

	"go.uber.org/zap"
)

// buildService wires the wizard service from configuration. The storage
// client is only created when the object store backend or archive upload
// actually needs it.
func buildService(cfg *config.Config, logg *zap.Logger) (*wizard.Service, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	schemas := schema.NewReader(db)
	manifests := manifest.NewClient(cfg.Manifest, logg)

	var client storage.Client
	if cfg.Store.Backend == "object" || cfg.Generate.Upload {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
	}

	storeCfg := cfg.Store
	if storeCfg.Bucket == "" {
		storeCfg.Bucket = cfg.Storage.Bucket
	}
	configs, err := store.New(storeCfg, client, logg)
	if err != nil {
		return nil, err
	}

	var uploader *generate.Uploader
	if cfg.Generate.Upload {
		uploader = generate.NewUploader(client, cfg.Storage.Bucket, cfg.Generate.Prefix)
	}

	driver := generate.NewDriver(generate.NewRenderer(), logg)
	return wizard.NewService(schemas, manifests, configs, driver,
		generate.NewPackager(), uploader, cfg.Generate.OutputDir, logg), nil
}
