package http

import "dappscope/internal/domain/entity"

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type dappStatusResponse struct {
	Explored         bool             `json:"explored"`
	MatchedContracts []entity.Address `json:"matchedContracts"`
}

type checkResponse struct {
	OK                bool                          `json:"ok"`
	Wallet            entity.Address                `json:"wallet"`
	ExploredCount     int                           `json:"exploredCount"`
	TotalDapps        int                           `json:"totalDapps"`
	ExploredDapps     []string                      `json:"exploredDapps"`
	ExploredAddresses []entity.Address              `json:"exploredAddresses"`
	DappStatus        map[string]dappStatusResponse `json:"dappStatus"`
}

type dappResponse struct {
	Name      string           `json:"name"`
	Logo      string           `json:"logo,omitempty"`
	Website   string           `json:"website,omitempty"`
	Contracts []entity.Address `json:"contracts"`
}

type dappListResponse struct {
	OK         bool           `json:"ok"`
	TotalDapps int            `json:"totalDapps"`
	Dapps      []dappResponse `json:"dapps"`
}

// newCheckResponse builds the wire form of a match. Entries sharing a name are
// merged in dappStatus: explored if any of them is, with their contracts combined.
func newCheckResponse(res entity.MatchResult) checkResponse {
	resp := checkResponse{
		OK:                true,
		Wallet:            res.Wallet,
		ExploredCount:     res.ExploredCount(),
		TotalDapps:        res.TotalDapps,
		ExploredDapps:     res.ExploredDapps,
		ExploredAddresses: res.MatchedAddresses.Values(),
		DappStatus:        make(map[string]dappStatusResponse, len(res.PerDapp)),
	}
	if resp.ExploredDapps == nil {
		resp.ExploredDapps = []string{}
	}

	merged := make(map[string]entity.AddressSet, len(res.PerDapp))
	for _, st := range res.PerDapp {
		set, ok := merged[st.Name]
		if !ok {
			set = make(entity.AddressSet)
			merged[st.Name] = set
		}
		for _, a := range st.MatchedContracts {
			set.Add(a)
		}
	}
	for name, set := range merged {
		resp.DappStatus[name] = dappStatusResponse{
			Explored:         set.Len() > 0,
			MatchedContracts: set.Values(),
		}
	}
	return resp
}

func newDappListResponse(dapps []entity.Dapp) dappListResponse {
	out := make([]dappResponse, 0, len(dapps))
	for _, d := range dapps {
		out = append(out, dappResponse{
			Name:      d.Name,
			Logo:      d.Logo,
			Website:   d.Website,
			Contracts: d.Contracts.Values(),
		})
	}
	return dappListResponse{OK: true, TotalDapps: len(dapps), Dapps: out}
}
