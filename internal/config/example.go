package config

// ExampleYAML is a complete scenario file written by `drawdown init`. It
// exercises every account type and shows how scenarios override the base.
const ExampleYAML = `# Drawdown scenario file. Omitted fields take their defaults.
portfolio:
  owner: alex
  age: 62
  withdrawal_order: tax_efficient   # traditional | tax_efficient | proportional
  inflation_rate: 0.03
  accounts:
    - id: emergency
      type: cash
      balance: 50000
      annual_return: 0.03
    - id: brokerage
      type: taxable
      balance: 300000
      stock_allocation: 0.75
      cost_basis: 200000
    - id: rollover_ira
      type: ira
      balance: 200000
      stock_allocation: 0.70
    - id: startup_shares
      type: private_stock
      balance: 80000
      conversion_year: 4          # locked until simulated year 4
    - id: estate
      type: inheritance
      balance: 150000
      inheritance_year: 10
    - id: house
      type: mortgage
      balance: 570000
      interest_rate: 0.06
      remaining_years: 23
    - id: pension
      type: income
      balance: 0
      annual_income: 32400
      duration_years: 30
      annual_adjustment: 0.025

strategy:
  type: fixed                     # fixed | percentage | dynamic | bucket
  initial_withdrawal: 80000
  inflation_rate: 0.03

simulation:
  years: 30
  num_simulations: 1000
  pay_mortgage: true
  parallel: true
  max_workers: 4
  seed: 0                         # 0 picks a seed from the clock

scenarios:
  - name: four percent
    strategy:
      type: percentage
      withdrawal_rate: 4
      min_withdrawal: 50000
  - name: guardrails
    strategy:
      type: dynamic
      base_withdrawal: 75000
  - name: buckets
    strategy:
      type: bucket
      annual_expenses: 80000
  - name: keep mortgage
    pay_mortgage: false
  - name: ira first
    withdrawal_order: traditional
`
