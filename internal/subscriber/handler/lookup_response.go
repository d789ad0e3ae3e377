package handler

import "hss-gateway/internal/spml"

// LookupResponse is the JSON view of a registry subscriber.
type LookupResponse struct {
	Identifier        string               `json:"identifier"`
	PublicIdentities  []PublicIdentityView `json:"publicIdentities,omitempty"`
	PrivateIdentities []string             `json:"privateIdentities,omitempty"`
	ServiceProfiles   []ServiceProfileView `json:"serviceProfiles,omitempty"`
}

// PublicIdentityView is one registry public identity.
type PublicIdentityView struct {
	UserID             string `json:"userId"`
	DefaultIndication  string `json:"defaultIndication,omitempty"`
	BarringIndication  string `json:"barringIndication,omitempty"`
	ServiceProfileName string `json:"serviceProfileName,omitempty"`
	IRSID              string `json:"irsId,omitempty"`
}

// ServiceProfileView is one registry service profile with its filters.
type ServiceProfileView struct {
	ProfileName     string   `json:"profileName"`
	GlobalFilterIDs []string `json:"globalFilterIds,omitempty"`
}

func toLookupResponse(sub *spml.Subscriber) LookupResponse {
	out := LookupResponse{Identifier: sub.Identifier}
	if sub.Hss == nil {
		return out
	}
	for _, pub := range sub.Hss.PublicUserIDs {
		out.PublicIdentities = append(out.PublicIdentities, PublicIdentityView{
			UserID:             pub.OriginalPublicUserID,
			DefaultIndication:  pub.DefaultIndication,
			BarringIndication:  pub.BarringIndication,
			ServiceProfileName: pub.ServiceProfileName,
			IRSID:              pub.IRSID,
		})
	}
	for _, priv := range sub.Hss.PrivateUserIDs {
		out.PrivateIdentities = append(out.PrivateIdentities, priv.PrivateUserID)
	}
	for _, sp := range sub.Hss.ServiceProfiles {
		view := ServiceProfileView{ProfileName: sp.ProfileName}
		for _, f := range sp.GlobalFilterIDs {
			view.GlobalFilterIDs = append(view.GlobalFilterIDs, f.GlobalFilterID)
		}
		out.ServiceProfiles = append(out.ServiceProfiles, view)
	}
	return out
}
