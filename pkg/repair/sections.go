package repair

import (
	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/niem"
)

// FootnoteName is the trailing free-text child of a section. Placeholders are
// inserted ahead of it.
const FootnoteName = "foia:FootnoteText"

// Section declares the placeholder shape for one statistics section.
type Section struct {
	// Name is the top-level section element, e.g. "foia:BacklogSection".
	Name string
	// Subsection is the mandatory data element inside the section.
	Subsection string
	// ID is the fixed s:id given to an injected subsection.
	ID string
	// Association is the organization association element name.
	Association string
	// Body holds the placeholder children of the subsection. It is cloned
	// for every injection.
	Body []*niem.Element
	// AssociationExtras are appended to the association after its references.
	AssociationExtras []*niem.Element
	// Fill completes a single existing subsection that is itself incomplete.
	// It reports whether anything changed.
	Fill func(sub *niem.Element) bool
}

func text(name string) *niem.Element {
	return niem.NewText(name, constants.PlaceholderText)
}

func zero(name string) *niem.Element {
	return niem.NewText(name, constants.PlaceholderQuantity)
}

func group(name string, children ...*niem.Element) *niem.Element {
	return niem.NewElement(name).Append(children...)
}

func zeros(names ...string) []*niem.Element {
	out := make([]*niem.Element, len(names))
	for i, n := range names {
		out[i] = zero(n)
	}
	return out
}

func responseTimes() []*niem.Element {
	return zeros(
		"foia:ResponseTimeMedianDaysValue",
		"foia:ResponseTimeAverageDaysValue",
		"foia:ResponseTimeLowestDaysValue",
		"foia:ResponseTimeHighestDaysValue",
	)
}

func pendingRequests() []*niem.Element {
	return zeros(
		"foia:PendingRequestQuantity",
		"foia:PendingRequestMedianDaysValue",
		"foia:PendingRequestAverageDaysValue",
	)
}

func processedRequests(extra ...string) []*niem.Element {
	return zeros(append([]string{
		"foia:RequestGrantedQuantity",
		"foia:RequestDeniedQuantity",
		"foia:AdjudicationMedianDaysValue",
		"foia:AdjudicationAverageDaysValue",
	}, extra...)...)
}

// TimeIncrementCodes are the response time buckets, in days.
var TimeIncrementCodes = []string{
	"1-20", "21-40", "41-60", "61-80", "81-100", "101-120", "121-140",
	"141-160", "161-180", "181-200", "201-300", "301-400", "400+",
}

func timeIncrements() []*niem.Element {
	out := make([]*niem.Element, 0, len(TimeIncrementCodes)+1)
	for _, code := range TimeIncrementCodes {
		out = append(out, group("foia:TimeIncrement",
			niem.NewText("foia:TimeIncrementCode", code),
			zero("foia:TimeIncrementProcessedQuantity"),
		))
	}
	return append(out, zero("foia:TimeIncrementTotalQuantity"))
}

func otherDenialReason() []*niem.Element {
	return []*niem.Element{
		group("foia:OtherDenialReason",
			text("foia:OtherDenialReasonDescriptionText"),
			zero("foia:OtherDenialReasonQuantity"),
		),
		zero("foia:ComponentOtherDenialReasonQuantity"),
	}
}

func processingComparison() []*niem.Element {
	return zeros(
		"foia:ReceivedLastYearQuantity",
		"foia:ReceivedCurrentYearQuantity",
		"foia:ProcessedLastYearQuantity",
		"foia:ProcessedCurrentYearQuantity",
	)
}

func backlogComparison() []*niem.Element {
	return zeros("foia:BacklogLastYearQuantity", "foia:BacklogCurrentYearQuantity")
}

// fillOldItems adds a placeholder old item to a pending items list that has none.
func fillOldItems(sub *niem.Element) bool {
	if sub.Child("foia:OldItem") != nil {
		return false
	}
	sub.Append(group("foia:OldItem",
		text("foia:OldItemReceiptDate"),
		zero("foia:OldItemPendingDaysQuantity"),
	))
	return true
}

// fillAppliedExemptions marks an exemptions list with no exemptions as N/A.
func fillAppliedExemptions(sub *niem.Element) bool {
	if sub.Child("foia:AppliedExemption") != nil || sub.Text != "" {
		return false
	}
	sub.Text = constants.PlaceholderText
	return true
}

func oldestPending(name, id string) Section {
	return Section{
		Name:        name,
		Subsection:  "foia:OldestPendingItems",
		ID:          id,
		Association: "foia:OldestPendingItemsOrganizationAssociation",
		Fill:        fillOldItems,
	}
}

func appliedExemptions(name, id string) Section {
	return Section{
		Name:        name,
		Subsection:  "foia:ComponentAppliedExemptions",
		ID:          id,
		Association: "foia:ComponentAppliedExemptionsOrganizationAssociation",
		Fill:        fillAppliedExemptions,
	}
}

func denialOtherReason(name, id string) Section {
	return Section{
		Name:        name,
		Subsection:  "foia:ComponentOtherDenialReason",
		ID:          id,
		Association: "foia:OtherDenialReasonOrganizationAssociation",
		Body:        otherDenialReason(),
	}
}

func responseTimeIncrements(name, id string) Section {
	return Section{
		Name:        name,
		Subsection:  "foia:ComponentResponseTimeIncrements",
		ID:          id,
		Association: "foia:ResponseTimeIncrementsOrganizationAssociation",
		Body:        timeIncrements(),
	}
}

func processedResponseTime(name, id string) Section {
	return Section{
		Name:        name,
		Subsection:  "foia:ProcessedResponseTime",
		ID:          id,
		Association: "foia:ProcessedResponseTimeOrganizationAssociation",
		Body: []*niem.Element{
			group("foia:SimpleResponseTime", responseTimes()...),
			group("foia:ComplexResponseTime", responseTimes()...),
			group("foia:ExpeditedResponseTime", responseTimes()...),
		},
	}
}

// Sections returns the placeholder table for every section the engine
// repairs, in the order they are applied.
func Sections() []Section {
	return []Section{
		oldestPending("foia:OldestPendingAppealSection", "OPA10"),
		oldestPending("foia:OldestPendingRequestSection", "OPR10"),
		oldestPending("foia:OldestPendingConsultationSection", "OPC10"),
		{
			Name:        "foia:Exemption3StatuteSection",
			Subsection:  "foia:ReliedUponStatute",
			ID:          "ES8",
			Association: "foia:ReliedUponStatuteOrganizationAssociation",
			Body: []*niem.Element{
				text("j:StatuteDescriptionText"),
				text("foia:ReliedUponStatuteInformationWithheldText"),
				group("nc:Case", text("nc:CaseTitleText")),
			},
			AssociationExtras: zeros("foia:ReliedUponStatuteQuantity"),
		},
		denialOtherReason("foia:RequestDenialOtherReasonSection", "CODR8"),
		appliedExemptions("foia:AppealDispositionAppliedExemptionsSection", "ADE1"),
		appliedExemptions("foia:RequestDispositionAppliedExemptionsSection", "RDE1"),
		denialOtherReason("foia:AppealDenialOtherReasonSection", "ADOR8"),
		{
			Name:        "foia:ProcessedConsultationSection",
			Subsection:  "foia:ProcessingStatistics",
			ID:          "PCN1",
			Association: "foia:ProcessingStatisticsOrganizationAssociation",
			Body: zeros(
				"foia:ProcessingStatisticsPendingAtStartQuantity",
				"foia:ProcessingStatisticsReceivedQuantity",
				"foia:ProcessingStatisticsProcessedQuantity",
				"foia:ProcessingStatisticsPendingAtEndQuantity",
			),
		},
		{
			Name:        "foia:AppealNonExemptionDenialSection",
			Subsection:  "foia:AppealNonExemptionDenial",
			ID:          "ANE1",
			Association: "foia:AppealNonExemptionDenialOrganizationAssociation",
		},
		responseTimeIncrements("foia:ComplexResponseTimeIncrementsSection", "CRT1"),
		{
			Name:        "foia:AppealResponseTimeSection",
			Subsection:  "foia:ResponseTime",
			ID:          "ART0",
			Association: "foia:ResponseTimeOrganizationAssociation",
			Body:        responseTimes(),
		},
		processedResponseTime("foia:ProcessedResponseTimeSection", "PRT0"),
		processedResponseTime("foia:InformationGrantedResponseTimeSection", "IGR0"),
		responseTimeIncrements("foia:SimpleResponseTimeIncrementsSection", "SRT1"),
		responseTimeIncrements("foia:ExpeditedResponseTimeIncrementsSection", "ERT1"),
		{
			Name:        "foia:PendingPerfectedRequestsSection",
			Subsection:  "foia:PendingPerfectedRequests",
			ID:          "PPR0",
			Association: "foia:PendingPerfectedRequestsOrganizationAssociation",
			Body: []*niem.Element{
				group("foia:SimplePendingRequestStatistics", pendingRequests()...),
				group("foia:ComplexPendingRequestStatistics", pendingRequests()...),
				group("foia:ExpeditedPendingRequestStatistics", pendingRequests()...),
			},
		},
		{
			Name:        "foia:ExpeditedProcessingSection",
			Subsection:  "foia:ExpeditedProcessing",
			ID:          "EP0",
			Association: "foia:ExpeditedProcessingOrganizationAssociation",
			Body:        processedRequests("foia:AdjudicationWithinTenDaysQuantity"),
		},
		{
			Name:        "foia:FeeWaiverSection",
			Subsection:  "foia:FeeWaiver",
			ID:          "FW0",
			Association: "foia:FeeWaiverOrganizationAssociation",
			Body:        processedRequests(),
		},
		{
			Name:        "foia:PersonnelAndCostSection",
			Subsection:  "foia:PersonnelAndCost",
			ID:          "PC1",
			Association: "foia:PersonnelAndCostOrganizationAssociation",
			Body: zeros(
				"foia:FullTimeEmployeeQuantity",
				"foia:EquivalentFullTimeEmployeeQuantity",
				"foia:TotalFullTimeStaffQuantity",
				"foia:ProcessingCostAmount",
				"foia:LitigationCostAmount",
				"foia:TotalCostAmount",
			),
		},
		{
			Name:        "foia:FeesCollectedSection",
			Subsection:  "foia:FeesCollected",
			ID:          "FC1",
			Association: "foia:FeesCollectedOrganizationAssociation",
			Body:        zeros("foia:FeesCollectedAmount", "foia:FeesCollectedCostPercent"),
		},
		{
			Name:        "foia:BacklogSection",
			Subsection:  "foia:Backlog",
			ID:          "BK1",
			Association: "foia:BacklogOrganizationAssociation",
			Body:        zeros("foia:BackloggedRequestQuantity", "foia:BackloggedAppealQuantity"),
		},
		{
			Name:        "foia:ProcessedRequestComparisonSection",
			Subsection:  "foia:ProcessingComparison",
			ID:          "RPC1",
			Association: "foia:ProcessingComparisonOrganizationAssociation",
			Body:        processingComparison(),
		},
		{
			Name:        "foia:BackloggedRequestComparisonSection",
			Subsection:  "foia:BacklogComparison",
			ID:          "RBC1",
			Association: "foia:BacklogComparisonOrganizationAssociation",
			Body:        backlogComparison(),
		},
		{
			Name:        "foia:ProcessedAppealComparisonSection",
			Subsection:  "foia:ProcessingComparison",
			ID:          "APC1",
			Association: "foia:ProcessingComparisonOrganizationAssociation",
			Body:        processingComparison(),
		},
		{
			Name:        "foia:BackloggedAppealComparisonSection",
			Subsection:  "foia:BacklogComparison",
			ID:          "ABC1",
			Association: "foia:BacklogComparisonOrganizationAssociation",
			Body:        backlogComparison(),
		},
	}
}

// placeholder builds the subsection and association for a section.
func (s Section) placeholder() (sub, assoc *niem.Element) {
	sub = niem.NewElement(s.Subsection).SetAttr(niem.IDAttr, s.ID)
	for _, c := range s.Body {
		sub.Append(c.Clone())
	}
	assoc = niem.OrganizationAssociation(s.Association, s.ID)
	for _, c := range s.AssociationExtras {
		assoc.Append(c.Clone())
	}
	return sub, assoc
}

// outcome of applying a section template.
type outcome int

const (
	outcomeAbsent outcome = iota
	outcomeUntouched
	outcomeInjected
	outcomeFilled
)

// apply repairs the section within root.
func (s Section) apply(root *niem.Element) outcome {
	section := root.Child(s.Name)
	if section == nil {
		return outcomeAbsent
	}

	subs := section.ChildrenNamed(s.Subsection)
	switch len(subs) {
	case 0:
		sub, assoc := s.placeholder()
		section.InsertBefore(section.Child(FootnoteName), sub, assoc)
		if s.Fill != nil {
			s.Fill(sub)
		}
		return outcomeInjected
	case 1:
		if s.Fill != nil && s.Fill(subs[0]) {
			return outcomeFilled
		}
		return outcomeUntouched
	default:
		return outcomeUntouched
	}
}
