// Package builder turns REST subscriber resources into SPML request
// graphs. All registry naming conventions (SIP addressing, generated
// identifier shapes, profile statics) are concentrated here.
package builder

import (
	"fmt"

	"hss-gateway/internal/catalog"
	"hss-gateway/internal/keygen"
	"hss-gateway/internal/spml"
	"hss-gateway/internal/subscriber/models"
)

// Address and identifier shapes used by the registry.
const (
	sipPrefix  = "sip:"
	e164Prefix = "+1"
	irsPrefix  = "irs"
	spPrefix   = "sp"

	subscriberIDLength = 32
	suffixLength       = 16
)

// Static HSS profile values applied to every new subscriber.
const (
	subscriptionID       = "1"
	profileTypeNormal    = "normal"
	adminBlocked         = "false"
	defaultSCSCFRequired = "true"
	ccfPrimary           = "primaryccf.ims.rr.com"
	ccfSecondary         = "secondaryccf.ims.rr.com"
	preferredAuthScheme  = "httpDigest"
	preferredDomain      = "ims"
	sessionReleasePolicy = "deregisterNoForcedSessionRelease"
	forkingPolicy        = "mixedForking"
)

// Builder assembles SPML requests. The key generator and catalog are
// injected so tests can pin identifiers and filter tables.
type Builder struct {
	keys    *keygen.Generator
	catalog *catalog.Catalog
}

// New returns a Builder backed by the given identifier source and catalog.
func New(keys *keygen.Generator, cat *catalog.Catalog) *Builder {
	return &Builder{keys: keys, catalog: cat}
}

// PublicAddress renders a user id as a SIP address in the site's domain,
// optionally in E.164 form.
func (b *Builder) PublicAddress(userID, site string, e164 bool) string {
	if e164 {
		return sipPrefix + e164Prefix + userID + "@" + b.catalog.Domain(site)
	}
	return sipPrefix + userID + "@" + b.catalog.Domain(site)
}

// PrivateAddress renders a private user id in the site's domain.
func (b *Builder) PrivateAddress(userID, site string) string {
	return userID + "@" + b.catalog.Domain(site)
}

// SearchRequest builds a lookup by public (impu) or private (impi)
// alias. E.164 form only applies to public searches.
func (b *Builder) SearchRequest(alias, userID, site string, e164 bool) *spml.SearchRequest {
	var value string
	if alias == spml.SearchAliasPublic {
		value = b.PublicAddress(userID, site, e164)
	} else {
		value = b.PrivateAddress(userID, site)
	}
	return &spml.SearchRequest{
		SPMLNamespace: spml.Namespace,
		XSINamespace:  spml.XSINamespace,
		Version:       spml.Version,
		Base: spml.Base{
			ObjectClass: spml.ObjectClass,
			Alias:       spml.Alias{Name: alias, Value: value},
		},
	}
}

// DeleteRequest builds a full subscriber removal by registry identifier.
func (b *Builder) DeleteRequest(identifier string) *spml.DeleteRequest {
	return &spml.DeleteRequest{
		SPMLNamespace:         spml.Namespace,
		DeleteScope:           spml.DeleteScopeAll,
		Execution:             spml.ExecutionSynchronous,
		Language:              spml.LanguageUS,
		ReturnResultingObject: spml.ReturnResultingObject,
		Version:               spml.Version,
		ObjectClass:           spml.ObjectClass,
		Identifier:            identifier,
	}
}

// ModifyRequest builds an empty modify request for the identified
// subscriber. Callers append modifications in application order.
func (b *Builder) ModifyRequest(identifier string) *spml.ModifyRequest {
	return &spml.ModifyRequest{
		SPMLNamespace:         spml.Namespace,
		SubscriberNamespace:   spml.SubscriberNamespace,
		XSINamespace:          spml.XSINamespace,
		Language:              spml.LanguageUS,
		ReturnResultingObject: spml.ReturnResultingObject,
		Version:               spml.Version,
		ObjectClass:           spml.ObjectClass,
		Identifier:            identifier,
	}
}

// AddRequest builds the full subscriber creation graph for a resource.
// Each create-operation public identity receives its own implicit
// registered set and service profile pair.
func (b *Builder) AddRequest(phone *models.DigitalPhone) (*spml.AddRequest, error) {
	hss := &spml.Hss{
		SubscriptionID:       subscriptionID,
		ProfileType:          profileTypeNormal,
		AdminBlocked:         adminBlocked,
		DefaultSCSCFRequired: defaultSCSCFRequired,
		CCFPrimary:           ccfPrimary,
		CCFSecondary:         ccfSecondary,
	}

	filters := b.GlobalFilterIDs(phone)

	var built int
	for _, pub := range phone.PublicIdentity {
		if pub.Operation != models.OperationCreate {
			continue
		}
		suffix := b.keys.RandomKey(suffixLength)
		irsID := irsPrefix + suffix
		spName := spPrefix + suffix

		hss.ImplicitRegisteredSets = append(hss.ImplicitRegisteredSets, spml.ImplicitRegisteredSet{IRSID: irsID})
		hss.PublicUserIDs = append(hss.PublicUserIDs, b.publicUserIDs(phone, pub, spName, irsID)...)
		hss.ServiceProfiles = append(hss.ServiceProfiles, spml.ServiceProfile{
			ProfileName:     spName,
			GlobalFilterIDs: filters,
			SubscribedMediaProfileID: &spml.SubscribedMediaProfileID{
				SessionReleasePolicy: sessionReleasePolicy,
				ForkingPolicy:        forkingPolicy,
			},
		})
		built++
	}
	if built == 0 {
		return nil, fmt.Errorf("no public identity with create operation")
	}

	// The first supplied private identity is stamped with the create
	// operation when none is set; every create entry is converted.
	if len(phone.PrivateIdentity) > 0 && phone.PrivateIdentity[0].Operation == "" {
		phone.PrivateIdentity[0].Operation = models.OperationCreate
	}
	for _, priv := range phone.PrivateIdentity {
		if priv.Operation != models.OperationCreate {
			continue
		}
		hss.PrivateUserIDs = append(hss.PrivateUserIDs, spml.PrivateUserID{
			PrivateUserID:                 b.PrivateAddress(priv.UserID, phone.Site),
			HTTPDigestKey:                 priv.Password,
			PreferredAuthenticationScheme: preferredAuthScheme,
			PreferredDomain:               preferredDomain,
		})
	}

	return &spml.AddRequest{
		SPMLNamespace:         spml.Namespace,
		SubscriberNamespace:   spml.SubscriberNamespace,
		NewGenerated:          spml.NewGenerated,
		Language:              spml.LanguageUS,
		ReturnResultingObject: spml.ReturnResultingObject,
		Version:               spml.Version,
		Object: &spml.Subscriber{
			Type:         spml.TypeSubscriber,
			XSINamespace: spml.XSINamespace,
			Identifier:   b.keys.RandomKey(subscriberIDLength),
			Hss:          hss,
		},
	}, nil
}

// publicUserIDs materializes the registry identities for one requested
// public identity. Group subscribers get a single named identity, RCF
// packages a single E.164 identity, and individual lines a bare plus
// E.164 pair whose default flag depends on the package class.
func (b *Builder) publicUserIDs(phone *models.DigitalPhone, pub models.PublicIdentity, spName, irsID string) []spml.PublicUserID {
	// Requests carry only originalPublicUserId; the nested publicUserId
	// element appears on registry responses alone.
	make1 := func(addr, def string) spml.PublicUserID {
		return spml.PublicUserID{
			OriginalPublicUserID: addr,
			BarringIndication:    "false",
			DefaultIndication:    def,
			ServiceProfileName:   spName,
			IRSID:                irsID,
		}
	}

	switch {
	case phone.Name == models.NameHuntGroup || phone.Name == models.NameBusinessGroup:
		return []spml.PublicUserID{make1(b.PublicAddress(pub.UserID, phone.Site, false), "true")}
	case b.catalog.IsRCF(phone.FeaturePackage):
		return []spml.PublicUserID{make1(b.PublicAddress(pub.UserID, phone.Site, true), "true")}
	case b.catalog.IsCommercial(phone.FeaturePackage):
		return []spml.PublicUserID{
			make1(b.PublicAddress(pub.UserID, phone.Site, false), "false"),
			make1(b.PublicAddress(pub.UserID, phone.Site, true), "true"),
		}
	default:
		return []spml.PublicUserID{
			make1(b.PublicAddress(pub.UserID, phone.Site, false), "true"),
			make1(b.PublicAddress(pub.UserID, phone.Site, true), "false"),
		}
	}
}

// GlobalFilterIDs resolves the requested features and package against
// the catalog, in catalog order. Residential packages get the profile's
// TAS appended to non-filter values.
func (b *Builder) GlobalFilterIDs(phone *models.DigitalPhone) []spml.GlobalFilterID {
	var tasSuffix string
	if b.catalog.IsResidential(phone.FeaturePackage) && phone.Profile != nil {
		tasSuffix = "-" + phone.Profile.TAS
	}

	// Filter codes come from the requested features alone; the package
	// name contributes only through its marker feature.
	codes := make(map[string]bool)
	if phone.Profile != nil {
		for _, f := range phone.Profile.Features {
			if f.Operation != models.OperationCreate {
				continue
			}
			if f.Name == models.FeatureBlock {
				for _, p := range f.FeatureProperties {
					if p.Operation == models.OperationCreate {
						codes[p.Name] = true
					}
				}
				continue
			}
			codes[f.Name] = true
		}
	}

	var out []spml.GlobalFilterID
	for _, entry := range b.catalog.Entries {
		if !codes[entry.Name] {
			continue
		}
		for _, v := range entry.Values {
			if entry.Action == catalog.ActionFilter {
				out = append(out, spml.GlobalFilterID{GlobalFilterID: v})
			} else {
				out = append(out, spml.GlobalFilterID{GlobalFilterID: v + tasSuffix})
			}
		}
	}
	return out
}

// PublicIdentityModification attaches a group member identity to an
// existing subscriber's registered set and service profile.
func (b *Builder) PublicIdentityModification(pub models.PublicIdentity, spName, irsID, defaultIndication string) spml.Modification {
	addr := sipPrefix + pub.UserID + "@" + b.catalog.DefaultDomain
	return spml.Modification{
		Operation: spml.ModOpSetOrAdd,
		Match: &spml.Match{
			Type:                 spml.TypePublicUserID,
			OriginalPublicUserID: addr,
			IRSID:                irsID,
		},
		ValueObject: &spml.ValueObject{
			Type:                 spml.TypePublicUserID,
			OriginalPublicUserID: addr,
			DefaultIndication:    defaultIndication,
			ServiceProfileName:   spName,
			IRSID:                irsID,
		},
	}
}

// PublicUserDeleteModification removes one registry public identity.
func (b *Builder) PublicUserDeleteModification(pub spml.PublicUserID) spml.Modification {
	return spml.Modification{
		Operation: spml.ModOpRemove,
		Match: &spml.Match{
			Type:                 spml.TypePublicUserID,
			IRSID:                pub.IRSID,
			OriginalPublicUserID: pub.OriginalPublicUserID,
		},
	}
}

// ServiceProfileModification removes a service profile by name.
func (b *Builder) ServiceProfileModification(profileName string) spml.Modification {
	return spml.Modification{
		Operation: spml.ModOpRemove,
		Match:     &spml.Match{Type: spml.TypeServiceProfile, ProfileName: profileName},
	}
}

// IRSModification removes an implicit registered set by id.
func (b *Builder) IRSModification(irsID string) spml.Modification {
	return spml.Modification{
		Operation: spml.ModOpRemove,
		Match:     &spml.Match{Type: spml.TypeImplicitRegisteredSet, IRSID: irsID},
	}
}

// PrivateIdentityModification removes a private identity.
func (b *Builder) PrivateIdentityModification(priv models.PrivateIdentity) spml.Modification {
	return spml.Modification{
		Operation: spml.ModOpRemove,
		Match: &spml.Match{
			Type:          spml.TypePrivateUserID,
			PrivateUserID: priv.UserID + "@" + b.catalog.DefaultDomain,
		},
	}
}
