package registry

import (
	dto "dappscope/internal/adapter/storage/registry/dto"
	"dappscope/internal/domain/entity"

	"go.uber.org/zap"
)

// toDomainDapp converts a raw registry entry into a domain dApp.
func toDomainDapp(raw dto.DappRaw) entity.Dapp {
	name := raw.Name
	if name == "" {
		name = raw.Title
	}
	if name == "" {
		name = entity.UnnamedDapp
	}

	return entity.Dapp{
		Name:      name,
		Logo:      raw.Logo,
		Website:   raw.Website,
		Contracts: FlattenContracts(raw.Contracts),
	}
}

// toDomainDapps converts a decoded registry document into domain dApps, preserving order.
func toDomainDapps(doc dto.DocumentRaw, logger *zap.Logger) []entity.Dapp {
	dapps := make([]entity.Dapp, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		dapp := toDomainDapp(dto.NewDappRaw(entry))
		if dapp.Contracts.Len() == 0 && logger != nil {
			logger.Debug("Registry entry has no valid contracts", zap.String("dapp", dapp.Name))
		}
		dapps = append(dapps, dapp)
	}
	return dapps
}
