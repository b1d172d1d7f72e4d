package extract

// DefaultClaimRules returns the known-false claim table in priority order
func DefaultClaimRules() []ClaimRule {
	return []ClaimRule{
		{
			Name: "vaccine_autism",
			Match: func(lower string) bool {
				return containsAll(lower, "vaccine", "autism")
			},
			Bundle: ClaimBundle{
				Claim:      "Vaccines cause autism",
				Headline:   "FALSE CLAIM DETECTED",
				TrustScore: 15,
				Evidence: []string{
					"Large-scale epidemiological studies consistently show no link between vaccines and autism",
					"The original 1998 study by Andrew Wakefield was retracted due to fraud and ethical violations",
					"Multiple independent studies involving millions of children found no causal relationship",
				},
				Citations: []string{
					"CDC: 'Vaccine Safety - Thimerosal and Autism' (cdc.gov/vaccinesafety/concerns/thimerosal/autism.html)",
					"Cochrane Review: 'Vaccines for measles, mumps and rubella in children' - No evidence of autism link",
					"American Academy of Pediatrics: 'Vaccine Safety: Examine the Evidence' (healthychildren.org)",
					"WHO: 'Global Advisory Committee on Vaccine Safety' - Multiple studies confirm vaccine safety",
				},
				RedFlags: []string{
					"Based on retracted fraudulent study",
					"Contradicts overwhelming scientific consensus",
					"No credible peer-reviewed evidence supports this claim",
				},
				ExpertConsensus: "The scientific and medical consensus, supported by dozens of large-scale studies, definitively shows vaccines do not cause autism.",
			},
		},
		{
			Name: "5g_covid",
			Match: func(lower string) bool {
				return containsAll(lower, "5g") && containsAny(lower, "covid", "coronavirus")
			},
			Bundle: ClaimBundle{
				Claim:      "5G causes COVID-19",
				Headline:   "CONSPIRACY THEORY DETECTED",
				TrustScore: 12,
				Evidence: []string{
					"COVID-19 is caused by SARS-CoV-2 virus, confirmed through genetic sequencing",
					"Radio waves cannot create or transmit viruses - basic physics violation",
					"Countries without 5G networks also experienced COVID-19 outbreaks",
				},
				Citations: []string{
					"WHO: 'Coronavirus disease (COVID-19) advice for the public: Mythbusters'",
					"Reuters Fact Check: '5G networks do not spread COVID-19'",
					"FDA: 'Radio Frequency and Wireless Technology' - No evidence of health risks",
					"Nature Medicine: 'The proximal origin of SARS-CoV-2' - Viral genome analysis",
				},
				RedFlags: []string{
					"Violates basic principles of virology and physics",
					"No peer-reviewed evidence supports this claim",
					"Promoted primarily through social media conspiracy networks",
				},
				ExpertConsensus: "Virologists, epidemiologists, and telecommunications experts all confirm 5G cannot cause viral infections.",
			},
		},
		{
			Name: "election_2020",
			Match: func(lower string) bool {
				return containsAll(lower, "election", "2020") && containsAny(lower, "stolen", "fraud")
			},
			Bundle: ClaimBundle{
				Claim:      "2020 US election was stolen",
				Headline:   "DISINFORMATION DETECTED",
				TrustScore: 8,
				Evidence: []string{
					"60+ court cases challenging election results were dismissed for lack of evidence",
					"Election security officials called it 'the most secure election in American history'",
					"Multiple recounts and audits confirmed original results",
				},
				Citations: []string{
					"AP News: 'Election officials contradict Trump on voting system glitches'",
					"Reuters: 'Fact Check: Courts have dismissed multiple lawsuits of alleged electoral fraud'",
					"Cybersecurity & Infrastructure Security Agency: 'Joint Statement from Elections Infrastructure'",
					"Georgia Secretary of State: 'Multiple audit results confirm election integrity'",
				},
				RedFlags: []string{
					"No credible evidence presented in court",
					"Claims contradicted by election officials from both parties",
					"Promotes distrust in democratic institutions",
				},
				ExpertConsensus: "Election security experts, courts, and bipartisan election officials confirm the election was conducted fairly and securely.",
			},
		},
	}
}

// generalBundle backs the fallback verdict; headline, score and red flags are filled per call
var generalBundle = ClaimBundle{
	Claim: "General content analysis",
	Evidence: []string{
		"Content requires verification through multiple sources",
		"No immediately identifiable false claims detected",
		"Standard verification protocols recommended",
	},
	Citations: []string{
		"Snopes.com - For viral claim verification",
		"FactCheck.org - For political and scientific claims",
		"PolitiFact.com - For truth-o-meter ratings",
		"Media Bias/Fact Check - For source credibility assessment",
	},
	ExpertConsensus: "Verify through multiple reputable sources before accepting or sharing.",
}

var verificationRecommendations = []string{
	"Cross-reference claims with peer-reviewed scientific literature",
	"Check multiple independent fact-checking organizations",
	"Verify publication dates and ensure information is current",
	"Consult official health organizations (CDC, WHO) for medical claims",
	"Review court records and official documents for legal/political claims",
	"Use reverse image search to verify accompanying images",
}
