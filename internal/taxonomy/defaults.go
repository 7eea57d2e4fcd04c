// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package taxonomy

// defaultSpecialties is the built-in canonical taxonomy used when no
// taxonomy file is supplied. Declaration order matters: it is the
// deterministic tie-breaker during ranking.
func defaultSpecialties() []CanonicalSpecialty {
	return []CanonicalSpecialty{
		{ID: "CARD-GENERAL", Parent: "Cardiology", Name: "Cardiology (General)", Domain: DomainAdult, Tags: []string{"cardiology"}},
		{ID: "CARD-INTERVENTIONAL", Parent: "Cardiology", Name: "Interventional Cardiology", Domain: DomainAdult, Tags: []string{"cardiology", "interventional"}},
		{ID: "CARD-EP", Parent: "Cardiology", Name: "Cardiac Electrophysiology", Domain: DomainAdult, Tags: []string{"cardiology", "electrophysiology"}},
		{ID: "PEDS-CARD-GENERAL", Parent: "Cardiology", Name: "Pediatric Cardiology", Domain: DomainPediatric, Tags: []string{"cardiology", "pediatric"}},
		{ID: "PEDS-CARD-INTERVENTIONAL", Parent: "Cardiology", Name: "Pediatric Interventional Cardiology", Domain: DomainPediatric, Tags: []string{"cardiology", "interventional", "pediatric"}},
		{ID: "CTSURG-GENERAL", Parent: "Cardiothoracic Surgery", Name: "Cardiothoracic Surgery (General)", Domain: DomainAdult, Tags: []string{"cardiothoracic", "cardiac", "surgery"}},
		{ID: "ORTHO-GENERAL", Parent: "Orthopedic Surgery", Name: "Orthopedic Surgery (General)", Domain: DomainAdult, Tags: []string{"orthopedic", "surgery"}},
		{ID: "ORTHO-SPINE", Parent: "Orthopedic Surgery", Name: "Orthopedic Surgery - Spine", Domain: DomainAdult, Tags: []string{"orthopedic", "surgery", "spine"}},
		{ID: "PEDS-ORTHO-GENERAL", Parent: "Orthopedic Surgery", Name: "Pediatric Orthopedic Surgery", Domain: DomainPediatric, Tags: []string{"orthopedic", "surgery", "pediatric"}},
		{ID: "FM-GENERAL", Parent: "Primary Care", Name: "Family Medicine", Domain: DomainAdult, Tags: []string{"family", "medicine"}},
		{ID: "IM-GENERAL", Parent: "Primary Care", Name: "Internal Medicine", Domain: DomainAdult, Tags: []string{"internal", "medicine"}},
		{ID: "PEDS-GENERAL", Parent: "Primary Care", Name: "General Pediatrics", Domain: DomainPediatric, Tags: []string{"pediatrics", "general"}},
		{ID: "HOSP-GENERAL", Parent: "Hospital Medicine", Name: "Hospitalist", Domain: DomainAdult, Tags: []string{"hospitalist", "hospital", "medicine"}},
		{ID: "PEDS-HOSP-GENERAL", Parent: "Hospital Medicine", Name: "Pediatric Hospitalist", Domain: DomainPediatric, Tags: []string{"hospitalist", "pediatric"}},
		{ID: "GI-GENERAL", Parent: "Gastroenterology", Name: "Gastroenterology (General)", Domain: DomainAdult, Tags: []string{"gastroenterology"}},
		{ID: "GI-ADVANCED", Parent: "Gastroenterology", Name: "Advanced Endoscopy", Domain: DomainAdult, Tags: []string{"gastroenterology", "endoscopy", "advanced"}},
		{ID: "APP-NP", Parent: "Advanced Practice", Name: "Nurse Practitioner", Domain: DomainAPPOther, Tags: []string{"nurse", "practitioner"}},
		{ID: "APP-PA", Parent: "Advanced Practice", Name: "Physician Assistant", Domain: DomainAPPOther, Tags: []string{"physician", "assistant"}},
		{ID: "APP-CRNA", Parent: "Advanced Practice", Name: "Certified Registered Nurse Anesthetist", Domain: DomainAPPOther, Tags: []string{"nurse", "anesthetist", "crna"}},
	}
}
