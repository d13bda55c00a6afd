package main

// defaultCatalog ships a small but representative blueprint set so the tool
// works out of the box. A real deployment points -catalog at its own file.
const defaultCatalog = `
candidates:
  - name: surfaces
    items: [rocky, icy, molten, oceanic, barren]
  - name: ringStyles
    items: [dust, ice, rock]

blueprints:
  - name: terrestrial
    weight: 3
    ringWeight: 0.15
    floats:
      - key: radius
        min: 0.4
        max: 2.5
        drives: surface
      - key: cloudCoverage
        min: 0
        max: 1
        clampUnit: true
        variation: true
        drives: clouds
      - key: moonCount
        min: 0
        max: 4
        asInteger: true
      - key: atmosphereDensity
        min: 0
        max: 1
        clampUnit: true
        drives: atmosphere
    colors:
      - key: surfaceTint
        base: {r: 0.45, g: 0.55, b: 0.35, a: 1}
        hueRange: 0.25
        saturationRange: 0.3
        brightnessRange: 0.3
        drives: surface
      - key: atmosphereTint
        base: {r: 0.5, g: 0.65, b: 0.9, a: 0.6}
        hueRange: 0.1
        saturationRange: 0.2
        brightnessRange: 0.2
        variation: true
        drives: atmosphere
    materials:
      - key: surfaceMaterial
        list: surfaces
        mask: -1
        drives: surface

  - name: gas giant
    weight: 2
    ringWeight: 0.7
    floats:
      - key: radius
        min: 4
        max: 12
        drives: surface
      - key: bandCount
        min: 3
        max: 12
        asInteger: true
        drives: surface
      - key: stormIntensity
        min: 0
        max: 1
        clampUnit: true
        variation: true
        drives: clouds
    colors:
      - key: bandTint
        base: {r: 0.8, g: 0.7, b: 0.5, a: 1}
        hueRange: 0.3
        saturationRange: 0.25
        brightnessRange: 0.25
        drives: surface
    materials:
      - key: surfaceMaterial
        list: surfaces
        mask: -4          # everything except rocky and icy
        drives: surface

  - name: molten world
    weight: 1
    floats:
      - key: radius
        min: 0.3
        max: 1.2
        drives: surface
      - key: crustCoverage
        min: 0
        max: 0.6
        clampUnit: true
        drives: surface
    colors:
      - key: lavaTint
        base: {r: 0.95, g: 0.35, b: 0.05, a: 1}
        hueRange: 0.08
        saturationRange: 0.1
        brightnessRange: 0.3
        variation: true
        drives: surface
    materials:
      - key: surfaceMaterial
        list: surfaces
        mask: 4           # molten only
        drives: surface

  # Never picked as a planet; resolved by name when a ring-existence draw
  # succeeds.
  - name: ice ring
    weight: 0
    floats:
      - key: innerRadius
        min: 1.3
        max: 1.8
        drives: ringTexture
      - key: outerRadius
        min: 2
        max: 3.5
        drives: ringTexture
      - key: opacity
        min: 0.2
        max: 0.9
        clampUnit: true
        variation: true
        drives: ringTexture
    colors:
      - key: ringTint
        base: {r: 0.85, g: 0.85, b: 0.9, a: 0.8}
        hueRange: 0.05
        saturationRange: 0.1
        brightnessRange: 0.2
        drives: ringTexture
    materials:
      - key: ringStyle
        list: ringStyles
        mask: -1
        drives: ringTexture
`
